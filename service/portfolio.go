package service

import (
	"context"
	"strings"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
	"github.com/andresouza/portfolio/utils"
)

const homeProjectLimit = 6

// HomeProjects returns the showcase for the landing page: published
// projects ranked by likes, capped to the top entries.
func (s *Service) HomeProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.store.Projects().Published(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) > homeProjectLimit {
		projects = projects[:homeProjectLimit]
	}
	return projects, nil
}

// PublishedProjects returns every published project ranked by likes.
func (s *Service) PublishedProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.Projects().Published(ctx)
}

// ProjectDetail returns a published project together with its comments,
// newest first. Drafts are invisible here, even to their owner.
func (s *Service) ProjectDetail(ctx context.Context, id string) (*models.Project, []models.Comment, error) {
	project, err := s.store.Projects().ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !project.Published() {
		return nil, nil, errs.ErrNotFound
	}
	comments, err := s.store.Comments().ByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	return project, comments, nil
}

// Like increments the like counter of a project on behalf of an
// authenticated user and returns the new total.
func (s *Service) Like(ctx context.Context, p *Principal, projectID string) (int, error) {
	if err := s.requireUser(p); err != nil {
		return 0, err
	}
	return s.store.Projects().IncrementLikes(ctx, projectID)
}

// CommentOn posts a sanitized comment on a project and notifies the admin.
func (s *Service) CommentOn(ctx context.Context, p *Principal, projectID, content string) (*models.Comment, error) {
	if err := s.requireUser(p); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(utils.Sanitize(content))
	if content == "" {
		return nil, errs.Validation("content", "comment cannot be empty")
	}
	project, err := s.store.Projects().ByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	comment := models.Comment{
		Content:   content,
		UserID:    p.UserID,
		ProjectID: project.ID,
	}
	if err := s.store.Comments().Create(ctx, &comment); err != nil {
		return nil, err
	}
	if user, err := s.store.Users().ByID(ctx, p.UserID); err == nil {
		comment.User = *user
	} else {
		s.log.Debugf("comment author lookup failed user=%s err=%v", p.UserID, err)
	}
	if s.notify != nil {
		s.notify.CommentPosted(*project, p.Name, content)
	}
	return &comment, nil
}

// About returns the about-page content and the achievement list, newest
// first. A missing about record renders as empty content, not an error.
func (s *Service) About(ctx context.Context) (*models.AboutInfo, []models.Achievement, error) {
	info, err := s.store.About().Get(ctx)
	if err != nil {
		if !errs.IsNotFound(err) {
			return nil, nil, err
		}
		info = &models.AboutInfo{ID: models.AboutInfoID}
	}
	achievements, err := s.store.Achievements().All(ctx)
	if err != nil {
		return nil, nil, err
	}
	return info, achievements, nil
}

// Contact records a contact-form submission and notifies the admin.
func (s *Service) Contact(ctx context.Context, name, email, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" {
		return errs.Validation("name", "name is required")
	}
	if email == "" {
		return errs.Validation("email", "email is required")
	}
	if message == "" {
		return errs.Validation("message", "message is required")
	}
	msg := models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.store.Contacts().Create(ctx, &msg); err != nil {
		return err
	}
	if s.notify != nil {
		s.notify.ContactReceived(name, email, message)
	}
	return nil
}
