package store

import (
	"context"
	"errors"
	"fmt"

	"feedbackboard/internal/models"

	"gorm.io/gorm"
)

// FeedbackStore manages the feedback table.
type FeedbackStore struct {
	db *gorm.DB
}

// NewFeedbackStore creates a new feedback store.
func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create persists a new feedback record for owner. Title and content are
// trimmed; every blank field is reported, and nothing is written unless
// both pass.
func (s *FeedbackStore) Create(ctx context.Context, owner, title, content string) (*models.Feedback, error) {
	var verrs ValidationErrors
	title = requireNonBlank(&verrs, "title", title)
	content = requireNonBlank(&verrs, "content", content)
	if len(verrs) > 0 {
		return nil, verrs
	}

	fb := &models.Feedback{
		Title:         title,
		Content:       content,
		OwnerUsername: owner,
	}
	if err := s.db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return fb, nil
}

// Update changes the title and content of an existing record. The id and
// owner never change. The same blank-field rule as Create applies.
func (s *FeedbackStore) Update(ctx context.Context, fb *models.Feedback, title, content string) (*models.Feedback, error) {
	var verrs ValidationErrors
	title = requireNonBlank(&verrs, "title", title)
	content = requireNonBlank(&verrs, "content", content)
	if len(verrs) > 0 {
		return nil, verrs
	}

	updates := map[string]interface{}{
		"title":   title,
		"content": content,
	}
	if err := s.db.WithContext(ctx).Model(fb).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}

	fb.Title = title
	fb.Content = content
	return fb, nil
}

// Delete removes a record. Deleting a record that no longer exists is an
// error; callers look the record up first.
func (s *FeedbackStore) Delete(ctx context.Context, fb *models.Feedback) error {
	result := s.db.WithContext(ctx).Delete(fb)
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a single feedback record.
func (s *FeedbackStore) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.db.WithContext(ctx).First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up feedback: %w", err)
	}
	return &fb, nil
}

// ListByOwner returns all feedback owned by username in insertion order.
func (s *FeedbackStore) ListByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := s.db.WithContext(ctx).Where("owner_username = ?", username).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}

// DeleteAllByOwner bulk-deletes every record owned by username and returns
// how many were removed. Used as the first phase of account deletion.
func (s *FeedbackStore) DeleteAllByOwner(ctx context.Context, username string) (int64, error) {
	result := s.db.WithContext(ctx).Where("owner_username = ?", username).Delete(&models.Feedback{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete feedback for %s: %w", username, result.Error)
	}
	return result.RowsAffected, nil
}
