package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/store"
)

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService(t)

	user, err := svc.Register(context.Background(), " Alice ", "Alice@Example.com", "secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret", user.PasswordHash)

	got, err := svc.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@example.com", "secret", "secret")
	assert.True(t, errs.IsValidation(err))

	_, err = svc.Register(ctx, "Bob", "", "secret", "secret")
	assert.True(t, errs.IsValidation(err))

	_, err = svc.Register(ctx, "Bob", "b@example.com", "secret", "different")
	assert.True(t, errs.IsValidation(err))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "alice@example.com", "other", "other")
	assert.True(t, errs.IsValidation(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret", "secret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.True(t, errs.IsValidation(err))

	_, err = svc.Login(ctx, "nobody@example.com", "secret")
	assert.True(t, errs.IsValidation(err))
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	st := store.NewMemory()
	rec := &notifierRecorder{}
	svc := service.New(st, rec, nil)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, rec.resets)
}

func TestForgotPasswordStoresTokenAndNotifies(t *testing.T) {
	st := store.NewMemory()
	rec := &notifierRecorder{}
	svc := service.New(st, rec, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "alice@example.com"))

	stored, err := st.Users().ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ResetToken)
	require.Len(t, rec.resets, 1)
	assert.Contains(t, rec.resets[0], stored.ResetToken)
}
