package tools

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/schema"
)

// Sentiment classifications returned by analyze_text.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Keyword sets for the naive sentiment score. Matching is
// case-insensitive on whole whitespace-delimited tokens.
var (
	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "excellent": {}, "happy": {}, "love": {},
	}
	negativeWords = map[string]struct{}{
		"bad": {}, "poor": {}, "sad": {}, "hate": {}, "terrible": {},
	}
)

// AnalyzeInput holds the text to analyze.
type AnalyzeInput struct {
	Text string `json:"text"`
}

// AnalyzeOutput carries the computed statistics.
type AnalyzeOutput struct {
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	Sentiment      string `json:"sentiment"`
}

// NewTextAnalyzer returns the analyze_text tool: word count, character
// count, and a keyword-based sentiment classification.
func NewTextAnalyzer() *toolagent.ToolFunc[AnalyzeInput, AnalyzeOutput] {
	return toolagent.NewToolFunc(
		"analyze_text",
		"Analyze text for word count, character count and a naive "+
			"Positive/Negative/Neutral sentiment classification.",
		schema.Object(map[string]*schema.Property{
			"text": schema.String("Input text to analyze"),
		}, "text"),
		analyzeText,
	)
}

func analyzeText(_ context.Context, input AnalyzeInput) (AnalyzeOutput, error) {
	words := strings.Fields(input.Text)

	score := 0
	for _, word := range words {
		lowered := strings.ToLower(word)
		if _, ok := positiveWords[lowered]; ok {
			score++
		} else if _, ok := negativeWords[lowered]; ok {
			score--
		}
	}

	sentiment := SentimentNeutral
	switch {
	case score > 0:
		sentiment = SentimentPositive
	case score < 0:
		sentiment = SentimentNegative
	}

	return AnalyzeOutput{
		WordCount:      len(words),
		CharacterCount: utf8.RuneCountInString(input.Text),
		Sentiment:      sentiment,
	}, nil
}
