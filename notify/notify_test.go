package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/notify"
	"github.com/andresouza/portfolio/store"
	"github.com/andresouza/portfolio/utils"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type mailRecorder struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *mailRecorder) send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{to: to, subject: subject, body: body})
	return r.err
}

func (r *mailRecorder) all() []sentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sentMail, len(r.sent))
	copy(out, r.sent)
	return out
}

func newUsers(t *testing.T) store.UserStore {
	t.Helper()
	st := store.NewMemory()
	admin := models.User{Name: "Admin", Email: "admin@portfolio.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, st.Users().Create(context.Background(), &admin))
	return st.Users()
}

func TestCommentNotificationGoesToAdmin(t *testing.T) {
	rec := &mailRecorder{}
	d := notify.NewDispatcher(newUsers(t), rec.send, nil)

	d.CommentPosted(models.Project{Title: "Shop"}, "alice", "great work")
	d.Close()

	sent := rec.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "admin@portfolio.com", sent[0].to)
	assert.Contains(t, sent[0].subject, "Shop")
	assert.Contains(t, sent[0].body, "alice")
	assert.Contains(t, sent[0].body, "great work")
}

func TestContactNotificationGoesToAdmin(t *testing.T) {
	rec := &mailRecorder{}
	d := notify.NewDispatcher(newUsers(t), rec.send, nil)

	d.ContactReceived("Bob", "bob@example.com", "hello")
	d.Close()

	sent := rec.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "admin@portfolio.com", sent[0].to)
	assert.Contains(t, sent[0].body, "bob@example.com")
}

func TestPasswordResetGoesToRequester(t *testing.T) {
	rec := &mailRecorder{}
	d := notify.NewDispatcher(newUsers(t), rec.send, nil)

	d.PasswordReset("alice@example.com", "Alice", "token-123")
	d.Close()

	sent := rec.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@example.com", sent[0].to)
	assert.Contains(t, sent[0].body, "token-123")
}

func TestDeliveryFailuresAreSwallowed(t *testing.T) {
	rec := &mailRecorder{err: errors.New("smtp down")}
	d := notify.NewDispatcher(newUsers(t), rec.send, nil)

	d.ContactReceived("Bob", "bob@example.com", "hello")
	d.CommentPosted(models.Project{Title: "Shop"}, "alice", "still works")
	d.Close()

	// both attempts went out despite the failing transport
	assert.Len(t, rec.all(), 2)
}

func TestUnconfiguredSMTPIsSilentNoOp(t *testing.T) {
	rec := &mailRecorder{err: utils.ErrSMTPNotConfigured}
	d := notify.NewDispatcher(newUsers(t), rec.send, nil)

	d.ContactReceived("Bob", "bob@example.com", "hello")
	d.Close()

	assert.Len(t, rec.all(), 1)
}

func TestMissingAdminSkipsAdminNotifications(t *testing.T) {
	st := store.NewMemory()
	rec := &mailRecorder{}
	d := notify.NewDispatcher(st.Users(), rec.send, nil)

	d.ContactReceived("Bob", "bob@example.com", "hello")
	d.PasswordReset("alice@example.com", "Alice", "token-123")
	d.Close()

	// the reset still goes out, the admin-directed event is dropped
	sent := rec.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@example.com", sent[0].to)
}

func TestEnqueueAfterCloseIsNoOp(t *testing.T) {
	rec := &mailRecorder{}
	d := notify.NewDispatcher(newUsers(t), rec.send, nil)
	d.Close()

	d.ContactReceived("Bob", "bob@example.com", "hello")
	d.Close()

	assert.Empty(t, rec.all())
}
