package service

import (
	"context"
	"testing"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Update(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), NoLatency())
	ctx := context.Background()

	updated, err := svc.Update(ctx, &domain.UpdateAISettingsRequest{Temperature: ptr(0.2), MaxTokens: ptr(2048)})
	require.NoError(t, err)
	assert.Equal(t, 0.2, updated.Temperature)
	assert.Equal(t, 2048, updated.MaxTokens)
	assert.Equal(t, "gpt-4-turbo", updated.Model)

	invalid := []*domain.UpdateAISettingsRequest{
		{Temperature: ptr(2.5)},
		{MaxTokens: ptr(0)},
		{ConfidenceThreshold: ptr(1.1)},
		{PromptTemplate: ptr("Answer: {question}")},
	}
	for _, req := range invalid {
		_, err := svc.Update(ctx, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	current, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, current, "rejected updates must leave settings untouched")
}

func TestSettingsService_PreviewPrompt(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), NoLatency())
	ctx := context.Background()

	_, err := svc.Update(ctx, &domain.UpdateAISettingsRequest{
		PromptTemplate: ptr("{context} | {question} | {context} | {unknown}"),
	})
	require.NoError(t, err)

	preview, err := svc.PreviewPrompt(ctx, &domain.PromptPreviewRequest{Context: "C", Question: "Q"})
	require.NoError(t, err)
	assert.Equal(t, "C | Q | C | {unknown}", preview.Prompt)
}
