package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/service"
)

func TestAdminOperationsEnforceRole(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	regular := seedUser(t, st, "regular", false)

	_, err := svc.AdminDashboard(ctx, nil)
	assert.True(t, errs.IsAuthRequired(err))

	_, err = svc.AdminDashboard(ctx, regular)
	assert.True(t, errs.IsForbidden(err))

	_, err = svc.CreateProject(ctx, regular, service.ProjectInput{Title: "t", Description: "d"})
	assert.True(t, errs.IsForbidden(err))

	err = svc.DeleteProject(ctx, nil, "some-id")
	assert.True(t, errs.IsAuthRequired(err))
}

func TestCreateProjectParsesTagsAndStatus(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)

	project, err := svc.CreateProject(ctx, admin, service.ProjectInput{
		Title:       "  Shop  ",
		Description: "desc",
		Tags:        "Go, Web , ,API",
		Status:      "published",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shop", project.Title)
	assert.Equal(t, models.StringList{"Go", "Web", "API"}, project.Tags)
	assert.Equal(t, models.StatusPublished, project.Status)

	// anything but "published" lands as draft
	draft, err := svc.CreateProject(ctx, admin, service.ProjectInput{
		Title:       "Other",
		Description: "desc",
		Status:      "bogus",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, draft.Status)
}

func TestCreateProjectValidatesRequiredFields(t *testing.T) {
	svc, st := newService(t)
	admin := seedUser(t, st, "admin", true)

	_, err := svc.CreateProject(context.Background(), admin, service.ProjectInput{Title: " ", Description: "d"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.CreateProject(context.Background(), admin, service.ProjectInput{Title: "t", Description: ""})
	assert.True(t, errs.IsValidation(err))
}

func TestUpdateProjectKeepsImageWhenOmitted(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)

	project, err := svc.CreateProject(ctx, admin, service.ProjectInput{
		Title:       "Shop",
		Description: "desc",
		Image:       "/uploads/original.png",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProject(ctx, admin, project.ID, service.ProjectInput{
		Title:       "Shop v2",
		Description: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/original.png", updated.Image)

	updated, err = svc.UpdateProject(ctx, admin, project.ID, service.ProjectInput{
		Title:       "Shop v3",
		Description: "desc",
		Image:       "/uploads/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/new.png", updated.Image)
}

func TestDeleteProjectCascadesComments(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)
	user := seedUser(t, st, "fan", false)

	project := seedProject(t, st, "Shop", models.StatusPublished, 0, time.Now())
	_, err := svc.CommentOn(ctx, user, project.ID, "great")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, admin, project.ID))

	comments, err := st.Comments().ByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	count, err := st.Comments().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAchievementDateValidation(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)

	_, err := svc.CreateAchievement(ctx, admin, service.AchievementInput{
		Title:       "Award",
		Description: "desc",
		Date:        "June 1st",
	})
	assert.True(t, errs.IsValidation(err))

	achievement, err := svc.CreateAchievement(ctx, admin, service.AchievementInput{
		Title:       "Award",
		Description: "desc",
		Date:        "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 2025, achievement.Date.Year())
	assert.Equal(t, time.June, achievement.Date.Month())
}

func TestAdminDashboardCounts(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)
	user := seedUser(t, st, "fan", false)

	base := time.Now().Add(-time.Hour)
	published := seedProject(t, st, "Shop", models.StatusPublished, 15, base)
	seedProject(t, st, "Tasks", models.StatusPublished, 8, base.Add(time.Minute))
	seedProject(t, st, "Dashboard", models.StatusDraft, 3, base.Add(2*time.Minute))

	_, err := svc.CommentOn(ctx, user, published.ID, "nice")
	require.NoError(t, err)

	dash, err := svc.AdminDashboard(ctx, admin)
	require.NoError(t, err)
	assert.EqualValues(t, 3, dash.TotalProjects)
	assert.EqualValues(t, 2, dash.PublishedProjects)
	assert.EqualValues(t, 26, dash.TotalLikes)
	assert.EqualValues(t, 1, dash.TotalComments)
	assert.EqualValues(t, 1, dash.RegisteredUsers)
	require.NotEmpty(t, dash.RecentProjects)
	assert.Equal(t, "Dashboard", dash.RecentProjects[0].Title)
}

func TestUpdateProfileUpsertsAbout(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)

	user, info, err := svc.UpdateProfile(ctx, admin, service.ProfileInput{
		Name:       "Andre",
		Email:      "andre@example.com",
		AboutTitle: "About Me",
		AboutText:  "I build things.",
		Skills:     "Go, SQL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Andre", user.Name)
	assert.Equal(t, "About Me", info.Title)
	assert.Equal(t, models.StringList{"Go", "SQL"}, info.Skills)
	assert.Equal(t, "andre@example.com", info.ContactEmail)

	stored, err := st.About().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "About Me", stored.Title)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	admin := seedUser(t, st, "admin", true)
	seedUser(t, st, "taken", false)

	_, _, err := svc.UpdateProfile(ctx, admin, service.ProfileInput{
		Name:  "Andre",
		Email: "taken@example.com",
	})
	assert.True(t, errs.IsValidation(err))
}
