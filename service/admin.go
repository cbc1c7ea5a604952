package service

import (
	"context"
	"strings"
	"time"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/utils"
)

const dashboardRecentLimit = 5

// Dashboard aggregates the stats and recent activity shown on the admin
// landing page.
type Dashboard struct {
	TotalProjects     int64            `json:"total_projects"`
	PublishedProjects int64            `json:"published_projects"`
	TotalLikes        int64            `json:"total_likes"`
	TotalComments     int64            `json:"total_comments"`
	TotalAchievements int64            `json:"total_achievements"`
	RegisteredUsers   int64            `json:"registered_users"`
	RecentProjects    []models.Project `json:"recent_projects"`
	RecentComments    []models.Comment `json:"recent_comments"`
}

// ProjectInput carries the admin-submitted project fields. Tags is a
// comma-separated list. An empty Image keeps the stored one on update.
type ProjectInput struct {
	Title       string
	Description string
	Tags        string
	Status      string
	Link        string
	Image       string
}

// AchievementInput carries the admin-submitted achievement fields. Date
// uses the 2006-01-02 layout.
type AchievementInput struct {
	Title       string
	Description string
	Date        string
}

// ProfileInput updates the admin account and the about-page content in one
// call. Skills is a comma-separated list.
type ProfileInput struct {
	Name         string
	Email        string
	ProfileImage string
	AboutTitle   string
	AboutText    string
	Skills       string
	ContactEmail string
}

// AdminDashboard returns counters and the latest activity.
func (s *Service) AdminDashboard(ctx context.Context, p *Principal) (*Dashboard, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	stats, err := s.store.Projects().Stats(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().Count(ctx)
	if err != nil {
		return nil, err
	}
	achievements, err := s.store.Achievements().Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users().CountRegular(ctx)
	if err != nil {
		return nil, err
	}
	recentProjects, err := s.store.Projects().Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	recentComments, err := s.store.Comments().Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		TotalProjects:     stats.Total,
		PublishedProjects: stats.Published,
		TotalLikes:        stats.TotalLikes,
		TotalComments:     comments,
		TotalAchievements: achievements,
		RegisteredUsers:   users,
		RecentProjects:    recentProjects,
		RecentComments:    recentComments,
	}, nil
}

// AllProjects lists every project including drafts, newest first.
func (s *Service) AllProjects(ctx context.Context, p *Principal) ([]models.Project, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	return s.store.Projects().All(ctx)
}

// AdminProject loads a single project regardless of status.
func (s *Service) AdminProject(ctx context.Context, p *Principal, id string) (*models.Project, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	return s.store.Projects().ByID(ctx, id)
}

// CreateProject creates a project from admin input.
func (s *Service) CreateProject(ctx context.Context, p *Principal, in ProjectInput) (*models.Project, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	project := models.Project{}
	if err := applyProjectInput(&project, in, true); err != nil {
		return nil, err
	}
	if err := s.store.Projects().Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies admin input to an existing project. The like
// counter is never writable through this path.
func (s *Service) UpdateProject(ctx context.Context, p *Principal, id string, in ProjectInput) (*models.Project, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	project, err := s.store.Projects().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProjectInput(project, in, false); err != nil {
		return nil, err
	}
	if err := s.store.Projects().Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project and all of its comments.
func (s *Service) DeleteProject(ctx context.Context, p *Principal, id string) error {
	if err := s.requireAdmin(p); err != nil {
		return err
	}
	return s.store.Projects().Delete(ctx, id)
}

func applyProjectInput(project *models.Project, in ProjectInput, create bool) error {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return errs.Validation("title", "title is required")
	}
	if description == "" {
		return errs.Validation("description", "description is required")
	}
	project.Title = title
	project.Description = description
	project.Tags = models.StringList(utils.SplitList(in.Tags))
	project.Link = strings.TrimSpace(in.Link)
	if in.Status == models.StatusPublished {
		project.Status = models.StatusPublished
	} else {
		project.Status = models.StatusDraft
	}
	if create || in.Image != "" {
		project.Image = in.Image
	}
	return nil
}

// Achievements lists every achievement, most recent date first.
func (s *Service) Achievements(ctx context.Context, p *Principal) ([]models.Achievement, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	return s.store.Achievements().All(ctx)
}

// Achievement loads a single achievement.
func (s *Service) Achievement(ctx context.Context, p *Principal, id string) (*models.Achievement, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	return s.store.Achievements().ByID(ctx, id)
}

// CreateAchievement creates an achievement from admin input.
func (s *Service) CreateAchievement(ctx context.Context, p *Principal, in AchievementInput) (*models.Achievement, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	a := models.Achievement{}
	if err := applyAchievementInput(&a, in); err != nil {
		return nil, err
	}
	if err := s.store.Achievements().Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAchievement applies admin input to an existing achievement.
func (s *Service) UpdateAchievement(ctx context.Context, p *Principal, id string, in AchievementInput) (*models.Achievement, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, err
	}
	a, err := s.store.Achievements().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAchievementInput(a, in); err != nil {
		return nil, err
	}
	if err := s.store.Achievements().Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAchievement removes an achievement.
func (s *Service) DeleteAchievement(ctx context.Context, p *Principal, id string) error {
	if err := s.requireAdmin(p); err != nil {
		return err
	}
	return s.store.Achievements().Delete(ctx, id)
}

func applyAchievementInput(a *models.Achievement, in AchievementInput) error {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return errs.Validation("title", "title is required")
	}
	if description == "" {
		return errs.Validation("description", "description is required")
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		return errs.Validation("date", "date must use the YYYY-MM-DD format")
	}
	a.Title = title
	a.Description = description
	a.Date = date
	return nil
}

// Profile returns the admin account together with the about-page content.
func (s *Service) Profile(ctx context.Context, p *Principal) (*models.User, *models.AboutInfo, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, nil, err
	}
	user, err := s.store.Users().ByID(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	info, err := s.store.About().Get(ctx)
	if err != nil {
		if !errs.IsNotFound(err) {
			return nil, nil, err
		}
		info = &models.AboutInfo{ID: models.AboutInfoID}
	}
	return user, info, nil
}

// UpdateProfile updates the admin account and upserts the about-page
// content in one operation.
func (s *Service) UpdateProfile(ctx context.Context, p *Principal, in ProfileInput) (*models.User, *models.AboutInfo, error) {
	if err := s.requireAdmin(p); err != nil {
		return nil, nil, err
	}
	user, err := s.store.Users().ByID(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if name == "" {
		return nil, nil, errs.Validation("name", "name is required")
	}
	if email == "" {
		return nil, nil, errs.Validation("email", "email is required")
	}
	if email != user.Email {
		if other, err := s.store.Users().ByEmail(ctx, email); err == nil && other.ID != user.ID {
			return nil, nil, errs.Validation("email", "email is already registered")
		} else if err != nil && !errs.IsNotFound(err) {
			return nil, nil, err
		}
	}
	user.Name = name
	user.Email = email
	if in.ProfileImage != "" {
		user.ProfileImage = in.ProfileImage
	}
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, nil, err
	}

	info := &models.AboutInfo{
		ID:           models.AboutInfoID,
		Title:        strings.TrimSpace(in.AboutTitle),
		Description:  strings.TrimSpace(in.AboutText),
		Skills:       models.StringList(utils.SplitList(in.Skills)),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
	}
	if info.ContactEmail == "" {
		info.ContactEmail = user.Email
	}
	if err := s.store.About().Save(ctx, info); err != nil {
		return nil, nil, err
	}
	return user, info, nil
}
