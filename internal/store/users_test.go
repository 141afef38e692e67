package store

import (
	"context"
	"errors"
	"testing"

	"feedbackboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliceInput() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		Password:  "secret1",
		Email:     "a@x.com",
		FirstName: "Alice",
		LastName:  "A",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	user, err := users.Register(ctx, aliceInput())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	got, err := users.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterNormalizesInput(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)

	in := RegisterInput{
		Username:  "  bobby  ",
		Password:  "hunter22",
		Email:     "  Bobby@Example.COM ",
		FirstName: " Bob ",
		LastName:  " B ",
	}
	user, err := users.Register(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "bobby", user.Username)
	assert.Equal(t, "bobby@example.com", user.Email)
	assert.Equal(t, "Bob", user.FirstName)
	assert.Equal(t, "B", user.LastName)

	// the trimmed password is the one that verifies
	_, err = users.Authenticate(context.Background(), "bobby", "hunter22")
	assert.NoError(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Register(ctx, aliceInput())
	require.NoError(t, err)

	// same username, different email
	in := aliceInput()
	in.Email = "other@x.com"
	_, err = users.Register(ctx, in)
	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)

	// same email, different username
	in = aliceInput()
	in.Username = "alice2"
	_, err = users.Register(ctx, in)
	require.ErrorAs(t, err, &dup)

	// only one user row exists
	got, err := users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	_, err = users.Get(ctx, "alice2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Register(ctx, aliceInput())
	require.NoError(t, err)

	user, err := users.UpdateProfile(ctx, "alice", " Alice@NEW.com ", "Alicia", "Anderson")
	require.NoError(t, err)
	assert.Equal(t, "alice@new.com", user.Email)
	assert.Equal(t, "Alicia", user.FirstName)
	assert.Equal(t, "alice", user.Username)

	got, err := users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@new.com", got.Email)
	assert.Equal(t, "Anderson", got.LastName)
}

func TestUpdateProfileBlankFields(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Register(ctx, aliceInput())
	require.NoError(t, err)

	_, err = users.UpdateProfile(ctx, "alice", "   ", "Alicia", "  ")
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, "last_name", verrs[1].Field)

	// nothing changed
	got, err := users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserStore(db)

	_, err := users.UpdateProfile(context.Background(), "ghost", "g@x.com", "G", "Host")
	assert.True(t, errors.Is(err, ErrNotFound))
}
