package tools

import (
	"context"
	"time"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/schema"
)

// Clock supplies the current time. Inject a fixed clock in tests; nil
// means time.Now.
type Clock func() time.Time

// DateOffsetInput holds the day offset. The schema declares it as an
// integer, so fractional values are rejected before the handler runs.
type DateOffsetInput struct {
	Days int `json:"days"`
}

// NewDateOffset returns the date_offset tool: today plus a signed
// number of days, as an ISO-8601 date string.
func NewDateOffset(clock Clock) *toolagent.ToolFunc[DateOffsetInput, string] {
	if clock == nil {
		clock = time.Now
	}
	return toolagent.NewToolFunc(
		"date_offset",
		"Compute the calendar date a given number of days from today. "+
			"Days may be negative for dates in the past.",
		schema.Object(map[string]*schema.Property{
			"days": schema.Integer("Number of days to add to today's date"),
		}, "days"),
		func(_ context.Context, input DateOffsetInput) (string, error) {
			return clock().AddDate(0, 0, input.Days).Format("2006-01-02"), nil
		},
	)
}
