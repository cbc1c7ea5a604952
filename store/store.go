package store

import (
	"context"

	"github.com/andresouza/portfolio/models"
)

// Store aggregates the per-entity persistence adapters. Implementations
// translate missing records into errs.ErrNotFound.
type Store interface {
	Users() UserStore
	Projects() ProjectStore
	Comments() CommentStore
	Achievements() AchievementStore
	About() AboutStore
	Contacts() ContactStore
}

// UserStore persists registered accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	// FirstAdmin returns the canonical admin account, if any.
	FirstAdmin(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	// CountRegular counts non-admin accounts.
	CountRegular(ctx context.Context) (int64, error)
}

// ProjectStats are aggregate counters for the admin dashboard.
type ProjectStats struct {
	Total      int64
	Published  int64
	TotalLikes int64
}

// ProjectStore persists portfolio projects.
type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	ByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	// Delete removes the project and cascades to its comments.
	Delete(ctx context.Context, id string) error
	// All returns every project, newest first.
	All(ctx context.Context) ([]models.Project, error)
	// Published returns published projects ranked by likes descending,
	// then creation time descending.
	Published(ctx context.Context) ([]models.Project, error)
	// Recent returns the most recently created projects.
	Recent(ctx context.Context, limit int) ([]models.Project, error)
	// IncrementLikes adds one like and returns the new count.
	IncrementLikes(ctx context.Context, id string) (int, error)
	Stats(ctx context.Context) (ProjectStats, error)
}

// CommentStore persists project comments.
type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	// ByProject returns a project's comments newest first, authors attached.
	ByProject(ctx context.Context, projectID string) ([]models.Comment, error)
	Recent(ctx context.Context, limit int) ([]models.Comment, error)
	Count(ctx context.Context) (int64, error)
}

// AchievementStore persists achievements.
type AchievementStore interface {
	Create(ctx context.Context, a *models.Achievement) error
	ByID(ctx context.Context, id string) (*models.Achievement, error)
	Update(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, id string) error
	// All returns achievements ordered by date descending.
	All(ctx context.Context) ([]models.Achievement, error)
	Count(ctx context.Context) (int64, error)
}

// AboutStore persists the about-page singleton.
type AboutStore interface {
	Get(ctx context.Context) (*models.AboutInfo, error)
	Save(ctx context.Context, info *models.AboutInfo) error
}

// ContactStore persists contact-form submissions.
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
}
