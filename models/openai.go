package models

import (
	"errors"

	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultOpenAIModel is used when no model name is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// NewOpenAIModel creates a Model backed by the OpenAI chat completions
// API (or any OpenAI-compatible endpoint configured through opts).
//
// Additional openai.Option values customise the underlying LangChainGo
// client, e.g. openai.WithBaseURL for compatible providers.
//
// Example:
//
//	model, err := models.NewOpenAIModel(
//	    "gpt-4o-mini",
//	    os.Getenv("OPENAI_API_KEY"),
//	)
func NewOpenAIModel(model, apiKey string, opts ...openai.Option) (*LCGWrapper, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required: set OPENAI_API_KEY")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	baseOpts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	// Caller options come after so they can override defaults.
	allOpts := append(baseOpts, opts...)

	llm, err := openai.New(allOpts...)
	if err != nil {
		return nil, err
	}
	return NewLCGWrapper(llm).WithModelName(model), nil
}
