package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/utils"
)

// Register creates a regular (non-admin) account. Emails are unique across
// all users.
func (s *Service) Register(ctx context.Context, name, email, password, confirm string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, errs.Validation("name", "name is required")
	}
	if email == "" {
		return nil, errs.Validation("email", "email is required")
	}
	if password == "" {
		return nil, errs.Validation("password", "password is required")
	}
	if password != confirm {
		return nil, errs.Validation("password", "passwords do not match")
	}

	if _, err := s.store.Users().ByEmail(ctx, email); err == nil {
		return nil, errs.Validation("email", "email is already registered")
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.store.Users().Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and returns the matching user. Failures are
// reported generically to avoid leaking which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.store.Users().ByEmail(ctx, email)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validation("credentials", "invalid email or password")
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, errs.Validation("credentials", "invalid email or password")
	}
	return user, nil
}

// UserByID loads an account, used to render the current session.
func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.Users().ByID(ctx, id)
}

// ForgotPassword stores a reset token and mails it to the account owner.
// It never reveals whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return errs.Validation("email", "email is required")
	}
	user, err := s.store.Users().ByEmail(ctx, email)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil
		}
		return err
	}
	user.ResetToken = uuid.NewString()
	if err := s.store.Users().Update(ctx, user); err != nil {
		return err
	}
	if s.notify != nil {
		s.notify.PasswordReset(user.Email, user.Name, user.ResetToken)
	}
	return nil
}
