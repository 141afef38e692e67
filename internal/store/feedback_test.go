package store

import (
	"context"
	"testing"

	"feedbackboard/internal/models"
	"feedbackboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newStores registers alice so feedback has an owner to reference.
func newStores(t *testing.T) (*gorm.DB, *UserStore, *FeedbackStore) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)
	_, err := users.Register(context.Background(), aliceInput())
	require.NoError(t, err)
	return db, users, NewFeedbackStore(db)
}

func feedbackCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Feedback{}).Count(&n).Error)
	return n
}

func TestCreateFeedback(t *testing.T) {
	db, _, feedback := newStores(t)
	ctx := context.Background()

	fb, err := feedback.Create(ctx, "alice", "  Great app  ", " It works. ")
	require.NoError(t, err)
	assert.NotZero(t, fb.ID)
	assert.Equal(t, "Great app", fb.Title)
	assert.Equal(t, "It works.", fb.Content)
	assert.Equal(t, "alice", fb.OwnerUsername)
	assert.EqualValues(t, 1, feedbackCount(t, db))
}

func TestCreateFeedbackBlankFields(t *testing.T) {
	db, _, feedback := newStores(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		title      string
		content    string
		wantFields []string
	}{
		{"blank title", "   ", "hi", []string{"title"}},
		{"blank content", "hi", "\t\n", []string{"content"}},
		{"both blank", "  ", "", []string{"title", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := feedback.Create(ctx, "alice", tt.title, tt.content)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, verrs[i].Field)
			}
		})
	}

	// nothing was persisted
	assert.EqualValues(t, 0, feedbackCount(t, db))
}

func TestUpdateFeedback(t *testing.T) {
	_, _, feedback := newStores(t)
	ctx := context.Background()

	fb, err := feedback.Create(ctx, "alice", "Original", "Body")
	require.NoError(t, err)
	id := fb.ID

	updated, err := feedback.Update(ctx, fb, " New title ", " New body ")
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "alice", updated.OwnerUsername)

	got, err := feedback.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, "New body", got.Content)
}

func TestUpdateFeedbackBlankFields(t *testing.T) {
	_, _, feedback := newStores(t)
	ctx := context.Background()

	fb, err := feedback.Create(ctx, "alice", "Original", "Body")
	require.NoError(t, err)

	_, err = feedback.Update(ctx, fb, "   ", "still here")
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "title", verrs[0].Field)

	got, err := feedback.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestDeleteFeedback(t *testing.T) {
	_, _, feedback := newStores(t)
	ctx := context.Background()

	fb, err := feedback.Create(ctx, "alice", "Doomed", "Body")
	require.NoError(t, err)

	require.NoError(t, feedback.Delete(ctx, fb))

	_, err = feedback.GetByID(ctx, fb.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// a second delete of the same record is an error
	assert.ErrorIs(t, feedback.Delete(ctx, fb), ErrNotFound)
}

func TestListByOwner(t *testing.T) {
	_, users, feedback := newStores(t)
	ctx := context.Background()

	bob := aliceInput()
	bob.Username = "bobby"
	bob.Email = "b@x.com"
	_, err := users.Register(ctx, bob)
	require.NoError(t, err)

	for _, title := range []string{"first", "second", "third"} {
		_, err := feedback.Create(ctx, "alice", title, "body")
		require.NoError(t, err)
	}
	_, err = feedback.Create(ctx, "bobby", "bob's", "body")
	require.NoError(t, err)

	items, err := feedback.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "third", items[2].Title)

	empty, err := feedback.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteAllByOwner(t *testing.T) {
	db, users, feedback := newStores(t)
	ctx := context.Background()

	bob := aliceInput()
	bob.Username = "bobby"
	bob.Email = "b@x.com"
	_, err := users.Register(ctx, bob)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := feedback.Create(ctx, "alice", "title", "body")
		require.NoError(t, err)
	}
	_, err = feedback.Create(ctx, "bobby", "keep", "body")
	require.NoError(t, err)

	removed, err := feedback.DeleteAllByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
	assert.EqualValues(t, 1, feedbackCount(t, db))

	removed, err = feedback.DeleteAllByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFeedbackRequiresExistingOwner(t *testing.T) {
	_, _, feedback := newStores(t)

	_, err := feedback.Create(context.Background(), "ghost", "title", "body")
	require.Error(t, err)
}
