package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
)

// GormStore is the relational persistence adapter. It is the authoritative
// variant; the underlying database serializes concurrent writes.
type GormStore struct {
	db *gorm.DB
}

// NewGorm wraps an initialized gorm connection.
func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserStore               { return &gormUsers{s.db} }
func (s *GormStore) Projects() ProjectStore         { return &gormProjects{s.db} }
func (s *GormStore) Comments() CommentStore         { return &gormComments{s.db} }
func (s *GormStore) Achievements() AchievementStore { return &gormAchievements{s.db} }
func (s *GormStore) About() AboutStore              { return &gormAbout{s.db} }
func (s *GormStore) Contacts() ContactStore         { return &gormContacts{s.db} }

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}

type gormUsers struct{ db *gorm.DB }

func (g *gormUsers) Create(ctx context.Context, u *models.User) error {
	return g.db.WithContext(ctx).Create(u).Error
}

func (g *gormUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := g.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *gormUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := g.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *gormUsers) FirstAdmin(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := g.db.WithContext(ctx).Where("is_admin = ?", true).Order("created_at ASC").First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *gormUsers) Update(ctx context.Context, u *models.User) error {
	return g.db.WithContext(ctx).Save(u).Error
}

func (g *gormUsers) CountRegular(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.User{}).Where("is_admin = ?", false).Count(&n).Error
	return n, err
}

type gormProjects struct{ db *gorm.DB }

func (g *gormProjects) Create(ctx context.Context, p *models.Project) error {
	return g.db.WithContext(ctx).Create(p).Error
}

func (g *gormProjects) ByID(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := g.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (g *gormProjects) Update(ctx context.Context, p *models.Project) error {
	return g.db.WithContext(ctx).Save(p).Error
}

// Delete removes the project and its comments in one transaction so no
// orphan comments survive a partial failure.
func (g *gormProjects) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func (g *gormProjects) All(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := g.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (g *gormProjects) Published(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := g.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Order("likes DESC, created_at DESC").
		Find(&out).Error
	return out, err
}

func (g *gormProjects) Recent(ctx context.Context, limit int) ([]models.Project, error) {
	var out []models.Project
	err := g.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// IncrementLikes relies on a single UPDATE so concurrent likes never lose
// increments.
func (g *gormProjects) IncrementLikes(ctx context.Context, id string) (int, error) {
	res := g.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, errs.ErrNotFound
	}
	var p models.Project
	if err := g.db.WithContext(ctx).Select("likes").First(&p, "id = ?", id).Error; err != nil {
		return 0, translate(err)
	}
	return p.Likes, nil
}

func (g *gormProjects) Stats(ctx context.Context) (ProjectStats, error) {
	var st ProjectStats
	db := g.db.WithContext(ctx).Model(&models.Project{})
	if err := db.Count(&st.Total).Error; err != nil {
		return st, err
	}
	if err := g.db.WithContext(ctx).Model(&models.Project{}).
		Where("status = ?", models.StatusPublished).Count(&st.Published).Error; err != nil {
		return st, err
	}
	err := g.db.WithContext(ctx).Model(&models.Project{}).
		Select("COALESCE(SUM(likes), 0)").Scan(&st.TotalLikes).Error
	return st, err
}

type gormComments struct{ db *gorm.DB }

func (g *gormComments) Create(ctx context.Context, c *models.Comment) error {
	return g.db.WithContext(ctx).Create(c).Error
}

func (g *gormComments) ByProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	var out []models.Comment
	err := g.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (g *gormComments) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	var out []models.Comment
	err := g.db.WithContext(ctx).Preload("User").Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (g *gormComments) Count(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.Comment{}).Count(&n).Error
	return n, err
}

type gormAchievements struct{ db *gorm.DB }

func (g *gormAchievements) Create(ctx context.Context, a *models.Achievement) error {
	return g.db.WithContext(ctx).Create(a).Error
}

func (g *gormAchievements) ByID(ctx context.Context, id string) (*models.Achievement, error) {
	var a models.Achievement
	if err := g.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (g *gormAchievements) Update(ctx context.Context, a *models.Achievement) error {
	return g.db.WithContext(ctx).Save(a).Error
}

func (g *gormAchievements) Delete(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(&models.Achievement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (g *gormAchievements) All(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	err := g.db.WithContext(ctx).Order("date DESC").Find(&out).Error
	return out, err
}

func (g *gormAchievements) Count(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.Achievement{}).Count(&n).Error
	return n, err
}

type gormAbout struct{ db *gorm.DB }

func (g *gormAbout) Get(ctx context.Context) (*models.AboutInfo, error) {
	var info models.AboutInfo
	if err := g.db.WithContext(ctx).First(&info, "id = ?", models.AboutInfoID).Error; err != nil {
		return nil, translate(err)
	}
	return &info, nil
}

func (g *gormAbout) Save(ctx context.Context, info *models.AboutInfo) error {
	info.ID = models.AboutInfoID
	return g.db.WithContext(ctx).Save(info).Error
}

type gormContacts struct{ db *gorm.DB }

func (g *gormContacts) Create(ctx context.Context, m *models.ContactMessage) error {
	return g.db.WithContext(ctx).Create(m).Error
}
