package session

import (
	"fmt"
	"time"
)

// DefaultSystemPrompt returns the default system instructions. The
// current date is included so the model can express relative dates
// without guessing.
func DefaultSystemPrompt(now time.Time) string {
	return fmt.Sprintf(`You are a capable assistant able to intelligently select and use specialized tools for math, text analysis, date calculations, and real-time weather information.

Today's date is %s.

Best practices:
- Identify the appropriate tool(s) for each user query.
- Ensure all tool inputs strictly match the expected schema.
- When multiple tools are required, use them sequentially.
- Present final results clearly in natural language with units and context.
- Make practical suggestions based on results (e.g., clothing recommendations for weather).

What to avoid:
- Never estimate or make assumptions when a tool can provide the answer.
- Do not expose internal tool names, API details, or JSON structures.
- Avoid giving raw data without interpretation.

Rules:
- Treat all tool outputs as authoritative.
- Combine sequential tool outputs into a single human-friendly answer.
- Handle tool errors gracefully and explain issues to the user.`,
		now.Format("2006-01-02"))
}

// ExampleQuery is one canned demonstration prompt.
type ExampleQuery struct {
	Title string
	Text  string
}

// ExampleQueries returns the demonstration prompts used by the CLI's
// example mode: a standalone calculation, a sequential multi-tool
// query, and an external API query.
func ExampleQueries() []ExampleQuery {
	return []ExampleQuery{
		{
			Title: "Math Calculation",
			Text:  "Evaluate this arithmetic expression: (234 * 12) + 98 and provide the result clearly.",
		},
		{
			Title: "Multi-Tool Usage",
			Text:  "If I buy 3 items priced at 499 each, calculate the total cost and tell me the expected delivery date if shipping takes 7 days.",
		},
		{
			Title: "Weather API",
			Text:  "Fetch today's weather in Chandigarh and suggest suitable clothing based on the temperature and conditions.",
		},
	}
}
