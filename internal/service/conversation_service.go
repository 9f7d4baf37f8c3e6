package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// ConversationService reviews and ingests assistant conversations
type ConversationService struct {
	store   *repository.Store
	latency *Latency
}

// NewConversationService creates a new conversation service
func NewConversationService(store *repository.Store, latency *Latency) *ConversationService {
	return &ConversationService{
		store:   store,
		latency: latency,
	}
}

// List returns the conversations matching every set filter
func (s *ConversationService) List(ctx context.Context, filters domain.ConversationFilters) (*domain.PaginatedResponse[domain.Conversation], error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}
	return domain.NewPaginatedResponse(s.store.Conversations.Filter(filters.Match)), nil
}

// Get returns a single conversation
func (s *ConversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	c, ok := s.store.Conversations.Get(id)
	if !ok {
		return nil, notFound("conversation", id)
	}
	return &c, nil
}

// AddFeedback sets the reviewer verdict. Later feedback replaces earlier feedback.
func (s *ConversationService) AddFeedback(ctx context.Context, id string, req *domain.FeedbackRequest) (*domain.Conversation, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	c, err := s.store.Conversations.Update(id, func(c *domain.Conversation) error {
		c.Feedback = &domain.Feedback{IsCorrect: *req.IsCorrect, Note: req.Note}
		c.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create opens a conversation, optionally with its first messages
func (s *ConversationService) Create(ctx context.Context, req *domain.CreateConversationRequest) (*domain.Conversation, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	c := domain.Conversation{
		ID:        uuid.New().String(),
		Channel:   req.Channel,
		Messages:  []domain.ConversationMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range req.Messages {
		appendMessage(&c, &req.Messages[i], now)
	}

	if err := s.store.Conversations.Insert(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// AppendMessage adds a message to the end of a conversation
func (s *ConversationService) AppendMessage(ctx context.Context, id string, req *domain.AppendMessageRequest) (*domain.ConversationMessage, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	c, err := s.store.Conversations.Update(id, func(c *domain.Conversation) error {
		appendMessage(c, req, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	msg := c.Messages[len(c.Messages)-1]
	return &msg, nil
}

// appendMessage adds a message and makes the latest assistant score the
// conversation's confidence
func appendMessage(c *domain.Conversation, req *domain.AppendMessageRequest, now time.Time) {
	msg := domain.ConversationMessage{
		ID:              uuid.New().String(),
		Role:            req.Role,
		Content:         req.Content,
		Timestamp:       now,
		RetrievedChunks: append([]domain.RetrievedChunk(nil), req.RetrievedChunks...),
	}
	if req.ConfidenceScore != nil {
		score := *req.ConfidenceScore
		msg.ConfidenceScore = &score
		if req.Role == domain.RoleAssistant {
			c.ConfidenceScore = score
		}
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = now
}
