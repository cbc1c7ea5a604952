// Package service is the domain layer: it enforces access control and
// data-lifecycle rules over the portfolio entities and derives the
// view-specific projections. All operations take an explicit request-scoped
// Principal instead of reading ambient session state.
package service

import (
	"go.uber.org/zap"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/store"
)

// Notifier is the asynchronous, best-effort notification boundary. Calls
// never block and never fail the triggering operation.
type Notifier interface {
	CommentPosted(project models.Project, commenter, content string)
	ContactReceived(name, email, message string)
	PasswordReset(email, name, token string)
}

// Principal identifies the authenticated caller of an operation. A nil
// Principal means anonymous.
type Principal struct {
	UserID string
	Name   string
	Admin  bool
}

// Service wires the persistence adapter and the notification dispatcher.
type Service struct {
	store  store.Store
	notify Notifier
	log    *zap.SugaredLogger
}

// New builds a Service. The notifier may be nil, in which case
// notifications are skipped entirely.
func New(st store.Store, n Notifier, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{store: st, notify: n, log: log}
}

func (s *Service) requireUser(p *Principal) error {
	if p == nil || p.UserID == "" {
		return errs.ErrAuthRequired
	}
	return nil
}

func (s *Service) requireAdmin(p *Principal) error {
	if err := s.requireUser(p); err != nil {
		return err
	}
	if !p.Admin {
		return errs.ErrForbidden
	}
	return nil
}
