package domain

import "time"

// Channel is where a conversation took place
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelTelegram Channel = "telegram"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation represents a logged chat with the shop assistant
type Conversation struct {
	ID              string                `json:"id"`
	Channel         Channel               `json:"channel"`
	Messages        []ConversationMessage `json:"messages"`
	ConfidenceScore float64               `json:"confidenceScore"`
	Feedback        *Feedback             `json:"feedback,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ConversationMessage represents a chat message
type ConversationMessage struct {
	ID              string           `json:"id"`
	Role            string           `json:"role"` // user, assistant
	Content         string           `json:"content"`
	Timestamp       time.Time        `json:"timestamp"`
	RetrievedChunks []RetrievedChunk `json:"retrievedChunks,omitempty"`
	ConfidenceScore *float64         `json:"confidenceScore,omitempty"`
}

// RetrievedChunk is a piece of context the assistant used for an answer
type RetrievedChunk struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Feedback is a reviewer's verdict on a conversation
type Feedback struct {
	IsCorrect bool   `json:"isCorrect"`
	Note      string `json:"note,omitempty"`
}

// Clone returns a deep copy
func (c Conversation) Clone() Conversation {
	if c.Messages != nil {
		msgs := make([]ConversationMessage, len(c.Messages))
		for i, m := range c.Messages {
			m.RetrievedChunks = append([]RetrievedChunk(nil), m.RetrievedChunks...)
			if m.ConfidenceScore != nil {
				score := *m.ConfidenceScore
				m.ConfidenceScore = &score
			}
			msgs[i] = m
		}
		c.Messages = msgs
	}
	if c.Feedback != nil {
		fb := *c.Feedback
		c.Feedback = &fb
	}
	return c
}

// ConversationFilters narrows a conversation listing
type ConversationFilters struct {
	Channel       string     `form:"channel"`
	StartDate     *time.Time `form:"startDate" time_format:"2006-01-02" time_utc:"1"`
	EndDate       *time.Time `form:"endDate" time_format:"2006-01-02" time_utc:"1"`
	MinConfidence *float64   `form:"minConfidence"`
	MaxConfidence *float64   `form:"maxConfidence"`
	HasFeedback   *bool      `form:"hasFeedback"`
}

// Match reports whether a conversation satisfies every filter.
// EndDate is inclusive of the whole day.
func (f ConversationFilters) Match(c *Conversation) bool {
	if f.Channel != "" && string(c.Channel) != f.Channel {
		return false
	}
	if f.StartDate != nil && c.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !c.CreatedAt.Before(f.EndDate.AddDate(0, 0, 1)) {
		return false
	}
	if f.MinConfidence != nil && c.ConfidenceScore < *f.MinConfidence {
		return false
	}
	if f.MaxConfidence != nil && c.ConfidenceScore > *f.MaxConfidence {
		return false
	}
	if f.HasFeedback != nil && (c.Feedback != nil) != *f.HasFeedback {
		return false
	}
	return true
}

// FeedbackRequest is the request to attach feedback to a conversation
type FeedbackRequest struct {
	IsCorrect *bool  `json:"isCorrect" binding:"required" validate:"required"`
	Note      string `json:"note,omitempty"`
}

// CreateConversationRequest opens a conversation from a channel
type CreateConversationRequest struct {
	Channel  Channel                `json:"channel" binding:"required" validate:"required,oneof=web whatsapp telegram"`
	Messages []AppendMessageRequest `json:"messages,omitempty" validate:"dive"`
}

// AppendMessageRequest adds one message to a conversation
type AppendMessageRequest struct {
	Role            string           `json:"role" binding:"required" validate:"required,oneof=user assistant"`
	Content         string           `json:"content" binding:"required" validate:"required"`
	RetrievedChunks []RetrievedChunk `json:"retrievedChunks,omitempty"`
	ConfidenceScore *float64         `json:"confidenceScore,omitempty" validate:"omitempty,gte=0,lte=1"`
}
