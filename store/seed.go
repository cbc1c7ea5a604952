package store

import (
	"context"
	"fmt"
	"time"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/utils"
)

// SeedOptions configure the bootstrap admin account.
type SeedOptions struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Seed creates the canonical admin account and starter content when the
// admin does not exist yet. Runs are idempotent: an existing admin means
// the store was already initialized.
func Seed(ctx context.Context, s Store, opts SeedOptions) error {
	if opts.AdminEmail == "" {
		opts.AdminEmail = "admin@portfolio.com"
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = "admin123"
	}
	if opts.AdminName == "" {
		opts.AdminName = "Portfolio Admin"
	}

	if _, err := s.Users().ByEmail(ctx, opts.AdminEmail); err == nil {
		return nil
	} else if !errs.IsNotFound(err) {
		return err
	}

	hash, err := utils.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Name:         opts.AdminName,
		Email:        opts.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.Users().Create(ctx, &admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if err := s.About().Save(ctx, &models.AboutInfo{
		Title:        "Welcome to My Portfolio",
		Description:  "I am a passionate developer building great digital experiences.",
		Skills:       models.StringList{"Web Development", "UI/UX Design", "Project Management"},
		ContactEmail: "contact@portfolio.com",
	}); err != nil {
		return fmt.Errorf("seed about info: %w", err)
	}

	projects := []models.Project{
		{
			Title:       "E-Commerce Platform",
			Description: "A complete e-commerce solution with user authentication, shopping cart, payment integration and an admin panel.",
			Tags:        models.StringList{"Web Development", "Full Stack", "E-commerce"},
			Status:      models.StatusPublished,
			Link:        "https://github.com/example/ecommerce",
			Likes:       15,
		},
		{
			Title:       "Mobile Task Manager",
			Description: "A responsive task management application with drag-and-drop, real-time updates and collaboration features.",
			Tags:        models.StringList{"Mobile Development", "React", "UI/UX"},
			Status:      models.StatusPublished,
			Link:        "https://github.com/example/taskmanager",
			Likes:       8,
		},
		{
			Title:       "Data Visualization Dashboard",
			Description: "An interactive dashboard for visualizing complex datasets with customizable charts, filters and live data updates.",
			Tags:        models.StringList{"Data Visualization", "Dashboard", "Analytics"},
			Status:      models.StatusDraft,
			Likes:       3,
		},
	}
	for i := range projects {
		if err := s.Projects().Create(ctx, &projects[i]); err != nil {
			return fmt.Errorf("seed project %q: %w", projects[i].Title, err)
		}
	}

	achievements := []models.Achievement{
		{
			Title:       "Certified Web Developer",
			Description: "Completed advanced web development certification with distinction.",
			Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Best Project Award",
			Description: "Won the \"Best Innovation\" award at the annual tech conference.",
			Date:        time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range achievements {
		if err := s.Achievements().Create(ctx, &achievements[i]); err != nil {
			return fmt.Errorf("seed achievement %q: %w", achievements[i].Title, err)
		}
	}

	return nil
}
