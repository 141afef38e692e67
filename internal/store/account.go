package store

import (
	"context"
	"fmt"

	"feedbackboard/internal/models"

	"gorm.io/gorm"
)

// Severity tags for user-facing status messages.
const (
	SeverityOkay  = "okay"
	SeverityError = "error"
)

// StatusMessage is a short human-readable outcome plus a severity tag.
type StatusMessage struct {
	Severity string
	Text     string
}

// DeletionReport describes how far an account deletion got. Each phase
// surfaces its own message, so Messages holds up to two entries.
type DeletionReport struct {
	FeedbackRemoved int64
	UserDeleted     bool
	Messages        []StatusMessage
	Err             error
}

// AccountService orchestrates the two-phase account deletion: first every
// feedback record the user owns, then the user row. A failed or partial
// first phase leaves the user row untouched, so no feedback can outlive
// its owner.
type AccountService struct {
	db       *gorm.DB
	feedback *FeedbackStore
}

// NewAccountService creates a new account service.
func NewAccountService(db *gorm.DB, feedback *FeedbackStore) *AccountService {
	return &AccountService{db: db, feedback: feedback}
}

// DeleteAccount removes username and everything they own. The report is
// always usable; Err carries the underlying failure when a phase did not
// complete.
func (s *AccountService) DeleteAccount(ctx context.Context, username string) DeletionReport {
	var report DeletionReport

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Feedback{}).
		Where("owner_username = ?", username).Count(&count).Error; err != nil {
		report.Err = fmt.Errorf("failed to count feedback: %w", err)
		report.Messages = append(report.Messages, StatusMessage{
			Severity: SeverityError,
			Text:     fmt.Sprintf("An error occurred while deleting feedback. Delete of %s did NOT occur.", username),
		})
		return report
	}

	if count > 0 {
		removed, err := s.feedback.DeleteAllByOwner(ctx, username)
		if err != nil {
			report.Err = err
			report.Messages = append(report.Messages, StatusMessage{
				Severity: SeverityError,
				Text: fmt.Sprintf("An error occurred while deleting %s. Delete of %s did NOT occur.",
					pieces(count), username),
			})
			return report
		}
		report.FeedbackRemoved = removed
		verb := "were"
		if removed == 1 {
			verb = "was"
		}
		report.Messages = append(report.Messages, StatusMessage{
			Severity: SeverityOkay,
			Text:     fmt.Sprintf("%s %s deleted.", pieces(removed), verb),
		})
	}

	result := s.db.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if result.Error != nil || result.RowsAffected == 0 {
		if result.Error != nil {
			report.Err = fmt.Errorf("failed to delete user: %w", result.Error)
		} else {
			report.Err = ErrNotFound
		}
		report.Messages = append(report.Messages, StatusMessage{
			Severity: SeverityError,
			Text:     fmt.Sprintf("An error occurred while deleting %s. %s was NOT deleted.", username, username),
		})
		return report
	}

	report.UserDeleted = true
	report.Messages = append(report.Messages, StatusMessage{
		Severity: SeverityOkay,
		Text:     fmt.Sprintf("User '%s' was deleted.", username),
	})
	return report
}

func pieces(n int64) string {
	if n == 1 {
		return "1 piece of feedback"
	}
	return fmt.Sprintf("%d pieces of feedback", n)
}
