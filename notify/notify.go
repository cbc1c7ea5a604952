// Package notify delivers best-effort email notifications. Events are
// queued and handled by a background worker: enqueueing never blocks the
// triggering request, and delivery failures are logged, never propagated.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/store"
	"github.com/andresouza/portfolio/utils"
)

// SendFunc performs the actual mail transport. utils.SendMail in production.
type SendFunc func(to, subject, body string) error

const (
	kindComment = iota
	kindContact
	kindPasswordReset
)

type task struct {
	kind int

	// comment
	projectTitle string
	commenter    string
	content      string

	// contact / password reset
	name    string
	email   string
	message string
	token   string
}

// Dispatcher is the notification queue. At-most-once, fire-and-forget:
// no retry, no delivery guarantee.
type Dispatcher struct {
	users store.UserStore
	send  SendFunc
	log   *zap.SugaredLogger

	queue  chan task
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts the worker goroutine. A nil logger is replaced with
// a no-op logger.
func NewDispatcher(users store.UserStore, send SendFunc, log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	d := &Dispatcher{
		users: users,
		send:  send,
		log:   log,
		queue: make(chan task, 64),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// CommentPosted queues an admin notification about a new comment.
func (d *Dispatcher) CommentPosted(project models.Project, commenter, content string) {
	d.enqueue(task{kind: kindComment, projectTitle: project.Title, commenter: commenter, content: content})
}

// ContactReceived queues an admin notification about a contact submission.
func (d *Dispatcher) ContactReceived(name, email, message string) {
	d.enqueue(task{kind: kindContact, name: name, email: email, message: message})
}

// PasswordReset queues a reset-token email for the given user.
func (d *Dispatcher) PasswordReset(email, name, token string) {
	d.enqueue(task{kind: kindPasswordReset, email: email, name: name, token: token})
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) enqueue(t task) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- t:
	default:
		d.log.Warnf("notification queue full, dropping event kind=%d", t.kind)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.queue {
		d.deliver(t)
	}
}

func (d *Dispatcher) deliver(t task) {
	to, subject, body, ok := d.compose(t)
	if !ok {
		return
	}
	if err := d.send(to, subject, body); err != nil {
		if errors.Is(err, utils.ErrSMTPNotConfigured) {
			d.log.Debugf("smtp not configured, notification skipped to=%s", to)
			return
		}
		d.log.Warnf("failed to send notification to=%s subject=%q err=%v", to, subject, err)
	}
}

func (d *Dispatcher) compose(t task) (to, subject, body string, ok bool) {
	switch t.kind {
	case kindComment:
		admin, err := d.adminEmail()
		if err != nil {
			return "", "", "", false
		}
		subject = fmt.Sprintf("New Comment on %q", t.projectTitle)
		body = fmt.Sprintf(
			"Hi Admin,\n\nA new comment has been posted on your project %q.\n\nCommenter: %s\nComment: %s\n\nYou can view the project and all comments in your admin dashboard.\n\nBest regards,\nPortfolio System\n",
			t.projectTitle, t.commenter, t.content)
		return admin, subject, body, true
	case kindContact:
		admin, err := d.adminEmail()
		if err != nil {
			return "", "", "", false
		}
		subject = fmt.Sprintf("New Contact Form Submission from %s", t.name)
		body = fmt.Sprintf(
			"Hi Admin,\n\nYou have received a new contact form submission:\n\nName: %s\nEmail: %s\nMessage: %s\n\nPlease respond to them directly at their email address.\n\nBest regards,\nPortfolio System\n",
			t.name, t.email, t.message)
		return admin, subject, body, true
	case kindPasswordReset:
		subject = "Password Reset Request"
		body = fmt.Sprintf(
			"Hi %s,\n\nYou requested a password reset for your portfolio account.\n\nReset Token: %s\n\nIf you didn't request this reset, please ignore this email.\n\nBest regards,\nPortfolio Team\n",
			t.name, t.token)
		return t.email, subject, body, true
	}
	return "", "", "", false
}

// adminEmail resolves the notification recipient. A missing admin is a
// silent no-op per the notification contract.
func (d *Dispatcher) adminEmail() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	admin, err := d.users.FirstAdmin(ctx)
	if err != nil {
		if !errs.IsNotFound(err) {
			d.log.Warnf("admin lookup for notification failed: %v", err)
		}
		return "", err
	}
	return admin.Email, nil
}
