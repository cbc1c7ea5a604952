package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/notify"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/store"
	"github.com/andresouza/portfolio/utils"
)

type notifierRecorder struct {
	mu       sync.Mutex
	comments []string
	contacts []string
	resets   []string
}

func (n *notifierRecorder) CommentPosted(project models.Project, commenter, content string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.comments = append(n.comments, project.Title+"/"+commenter+": "+content)
}

func (n *notifierRecorder) ContactReceived(name, email, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, name+" <"+email+">")
}

func (n *notifierRecorder) PasswordReset(email, name, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets = append(n.resets, email+":"+token)
}

func newService(t *testing.T) (*service.Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	return service.New(st, nil, nil), st
}

func seedUser(t *testing.T, st *store.Memory, name string, admin bool) *service.Principal {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		IsAdmin:      admin,
	}
	require.NoError(t, st.Users().Create(context.Background(), &u))
	return &service.Principal{UserID: u.ID, Name: u.Name, Admin: admin}
}

func seedProject(t *testing.T, st *store.Memory, title, status string, likes int, createdAt time.Time) models.Project {
	t.Helper()
	p := models.Project{
		Title:       title,
		Description: title + " description",
		Status:      status,
		Likes:       likes,
		CreatedAt:   createdAt,
	}
	require.NoError(t, st.Projects().Create(context.Background(), &p))
	return p
}

func TestPublishedProjectsRankedByLikes(t *testing.T) {
	svc, st := newService(t)
	base := time.Now().Add(-time.Hour)
	seedProject(t, st, "Shop", models.StatusPublished, 15, base)
	seedProject(t, st, "Tasks", models.StatusPublished, 8, base.Add(time.Minute))
	seedProject(t, st, "Dashboard", models.StatusDraft, 3, base.Add(2*time.Minute))

	projects, err := svc.PublishedProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Shop", projects[0].Title)
	assert.Equal(t, "Tasks", projects[1].Title)
}

func TestPublishedProjectsLikeTieBreaksOnNewest(t *testing.T) {
	svc, st := newService(t)
	base := time.Now().Add(-time.Hour)
	seedProject(t, st, "Older", models.StatusPublished, 5, base)
	seedProject(t, st, "Newer", models.StatusPublished, 5, base.Add(time.Minute))

	projects, err := svc.PublishedProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Newer", projects[0].Title)
}

func TestHomeProjectsCapped(t *testing.T) {
	svc, st := newService(t)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		seedProject(t, st, fmt.Sprintf("Project %d", i), models.StatusPublished, i, base.Add(time.Duration(i)*time.Minute))
	}

	projects, err := svc.HomeProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 6)
	assert.Equal(t, 7, projects[0].Likes)
}

func TestProjectDetailHidesDrafts(t *testing.T) {
	svc, st := newService(t)
	draft := seedProject(t, st, "Secret", models.StatusDraft, 0, time.Now())

	_, _, err := svc.ProjectDetail(context.Background(), draft.ID)
	assert.True(t, errs.IsNotFound(err))

	_, _, err = svc.ProjectDetail(context.Background(), "no-such-id")
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectDetailCommentsNewestFirst(t *testing.T) {
	svc, st := newService(t)
	project := seedProject(t, st, "Shop", models.StatusPublished, 0, time.Now().Add(-time.Hour))
	author := seedUser(t, st, "alice", false)

	base := time.Now().Add(-30 * time.Minute)
	for i, text := range []string{"first", "second", "third"} {
		c := models.Comment{
			Content:   text,
			UserID:    author.UserID,
			ProjectID: project.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.Comments().Create(context.Background(), &c))
	}

	_, comments, err := svc.ProjectDetail(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "first", comments[2].Content)
	assert.Equal(t, "alice", comments[0].User.Name)
}

func TestLikeRequiresAuthentication(t *testing.T) {
	svc, st := newService(t)
	project := seedProject(t, st, "Shop", models.StatusPublished, 4, time.Now())

	_, err := svc.Like(context.Background(), nil, project.ID)
	assert.True(t, errs.IsAuthRequired(err))

	got, err := st.Projects().ByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Likes)
}

func TestLikeIncrementsCounter(t *testing.T) {
	svc, st := newService(t)
	project := seedProject(t, st, "Shop", models.StatusPublished, 0, time.Now())
	user := seedUser(t, st, "bob", false)

	var likes int
	var err error
	for i := 0; i < 3; i++ {
		likes, err = svc.Like(context.Background(), user, project.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, likes)

	_, err = svc.Like(context.Background(), user, "no-such-id")
	assert.True(t, errs.IsNotFound(err))
}

func TestCommentRejectsWhitespaceOnly(t *testing.T) {
	svc, st := newService(t)
	project := seedProject(t, st, "Shop", models.StatusPublished, 0, time.Now())
	user := seedUser(t, st, "carol", false)

	_, err := svc.CommentOn(context.Background(), user, project.ID, "   \n\t ")
	assert.True(t, errs.IsValidation(err))

	count, err := st.Comments().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCommentSanitizesAndNotifies(t *testing.T) {
	st := store.NewMemory()
	rec := &notifierRecorder{}
	svc := service.New(st, rec, nil)
	project := seedProject(t, st, "Shop", models.StatusPublished, 0, time.Now())
	user := seedUser(t, st, "dave", false)

	comment, err := svc.CommentOn(context.Background(), user, project.ID, "nice <script>alert(1)</script>work")
	require.NoError(t, err)
	assert.NotContains(t, comment.Content, "<script>")
	assert.Equal(t, "dave", comment.User.Name)

	require.Len(t, rec.comments, 1)
	assert.Contains(t, rec.comments[0], "Shop/dave")
}

func TestCommentSucceedsWhenNotificationDeliveryFails(t *testing.T) {
	st := store.NewMemory()
	admin := models.User{Name: "Admin", Email: "admin@portfolio.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, st.Users().Create(context.Background(), &admin))

	for name, sendErr := range map[string]error{
		"unconfigured smtp": utils.ErrSMTPNotConfigured,
		"transport failure": errors.New("smtp down"),
	} {
		t.Run(name, func(t *testing.T) {
			d := notify.NewDispatcher(st.Users(), func(to, subject, body string) error { return sendErr }, nil)
			svc := service.New(st, d, nil)
			user := seedUser(t, st, "fan-"+name[:4], false)
			project := seedProject(t, st, "Shop "+name, models.StatusPublished, 0, time.Now())

			comment, err := svc.CommentOn(context.Background(), user, project.ID, "looks great")
			require.NoError(t, err)
			d.Close()

			got, err := st.Comments().ByProject(context.Background(), project.ID)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, comment.ID, got[0].ID)
		})
	}
}

func TestCommentRequiresAuthentication(t *testing.T) {
	svc, st := newService(t)
	project := seedProject(t, st, "Shop", models.StatusPublished, 0, time.Now())

	_, err := svc.CommentOn(context.Background(), nil, project.ID, "hello")
	assert.True(t, errs.IsAuthRequired(err))
}

func TestAboutWithoutRecordStillListsAchievements(t *testing.T) {
	svc, st := newService(t)
	a := models.Achievement{Title: "Award", Description: "d", Date: time.Now()}
	require.NoError(t, st.Achievements().Create(context.Background(), &a))

	info, achievements, err := svc.About(context.Background())
	require.NoError(t, err)
	assert.Empty(t, info.Title)
	require.Len(t, achievements, 1)
}

func TestContactValidatesAndNotifies(t *testing.T) {
	st := store.NewMemory()
	rec := &notifierRecorder{}
	svc := service.New(st, rec, nil)

	err := svc.Contact(context.Background(), "Eve", "eve@example.com", " ")
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, rec.contacts)

	err = svc.Contact(context.Background(), "Eve", "eve@example.com", "hello there")
	require.NoError(t, err)
	require.Len(t, rec.contacts, 1)
	assert.Equal(t, "Eve <eve@example.com>", rec.contacts[0])
}
