package domain

import "strings"

// Prompt template placeholders
const (
	PlaceholderContext  = "{context}"
	PlaceholderQuestion = "{question}"
)

// AISettings holds the assistant's generation configuration
type AISettings struct {
	Model               string  `json:"model" validate:"required"`
	Temperature         float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens           int     `json:"maxTokens" validate:"gte=1,lte=32768"`
	PromptTemplate      string  `json:"promptTemplate" validate:"required,contains={context},contains={question}"`
	FallbackResponse    string  `json:"fallbackResponse" validate:"required"`
	ConfidenceThreshold float64 `json:"confidenceThreshold" validate:"gte=0,lte=1"`
}

// RenderPrompt substitutes every {context} and {question} placeholder.
// Other braces are left as they are.
func (s *AISettings) RenderPrompt(context, question string) string {
	r := strings.NewReplacer(PlaceholderContext, context, PlaceholderQuestion, question)
	return r.Replace(s.PromptTemplate)
}

// UpdateAISettingsRequest is a partial settings update
type UpdateAISettingsRequest struct {
	Model               *string  `json:"model,omitempty"`
	Temperature         *float64 `json:"temperature,omitempty"`
	MaxTokens           *int     `json:"maxTokens,omitempty"`
	PromptTemplate      *string  `json:"promptTemplate,omitempty"`
	FallbackResponse    *string  `json:"fallbackResponse,omitempty"`
	ConfidenceThreshold *float64 `json:"confidenceThreshold,omitempty"`
}

// Apply merges the request into s
func (r *UpdateAISettingsRequest) Apply(s *AISettings) {
	if r.Model != nil {
		s.Model = *r.Model
	}
	if r.Temperature != nil {
		s.Temperature = *r.Temperature
	}
	if r.MaxTokens != nil {
		s.MaxTokens = *r.MaxTokens
	}
	if r.PromptTemplate != nil {
		s.PromptTemplate = *r.PromptTemplate
	}
	if r.FallbackResponse != nil {
		s.FallbackResponse = *r.FallbackResponse
	}
	if r.ConfidenceThreshold != nil {
		s.ConfidenceThreshold = *r.ConfidenceThreshold
	}
}

// PromptPreviewRequest asks for a rendered prompt
type PromptPreviewRequest struct {
	Context  string `json:"context"`
	Question string `json:"question" binding:"required"`
}

// PromptPreview is the rendered prompt
type PromptPreview struct {
	Prompt string `json:"prompt"`
}

// DefaultAISettings returns the settings a fresh store starts with
func DefaultAISettings() AISettings {
	return AISettings{
		Model:       "gpt-4-turbo",
		Temperature: 0.7,
		MaxTokens:   1024,
		PromptTemplate: `You are a helpful mobile phone shop assistant. Use the following context to answer customer questions:

{context}

If you cannot find relevant information in the context, politely say so and suggest contacting customer service.

Customer Question: {question}`,
		FallbackResponse:    "I apologize, but I am unable to find information about that. Please contact our customer service team at support@ragshop.com for assistance.",
		ConfidenceThreshold: 0.6,
	}
}
