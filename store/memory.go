package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andresouza/portfolio/errs"
	"github.com/andresouza/portfolio/models"
)

// Memory is the in-process persistence variant: mutex-guarded maps behind
// the same Store interface. It backs tests and database-less local runs;
// the relational variant remains authoritative in production.
type Memory struct {
	mu           sync.RWMutex
	users        map[string]models.User
	projects     map[string]models.Project
	comments     map[string]models.Comment
	achievements map[string]models.Achievement
	about        *models.AboutInfo
	contacts     map[string]models.ContactMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:        map[string]models.User{},
		projects:     map[string]models.Project{},
		comments:     map[string]models.Comment{},
		achievements: map[string]models.Achievement{},
		contacts:     map[string]models.ContactMessage{},
	}
}

func (m *Memory) Users() UserStore               { return &memUsers{m} }
func (m *Memory) Projects() ProjectStore         { return &memProjects{m} }
func (m *Memory) Comments() CommentStore         { return &memComments{m} }
func (m *Memory) Achievements() AchievementStore { return &memAchievements{m} }
func (m *Memory) About() AboutStore              { return &memAbout{m} }
func (m *Memory) Contacts() ContactStore         { return &memContacts{m} }

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func ensureTime(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

type memUsers struct{ m *Memory }

func (s *memUsers) Create(ctx context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ensureID(&u.ID)
	ensureTime(&u.CreatedAt)
	s.m.users[u.ID] = *u
	return nil
}

func (s *memUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func (s *memUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *memUsers) FirstAdmin(ctx context.Context) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var found *models.User
	for _, u := range s.m.users {
		if !u.IsAdmin {
			continue
		}
		u := u
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			found = &u
		}
	}
	if found == nil {
		return nil, errs.ErrNotFound
	}
	return found, nil
}

func (s *memUsers) Update(ctx context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[u.ID]; !ok {
		return errs.ErrNotFound
	}
	s.m.users[u.ID] = *u
	return nil
}

func (s *memUsers) CountRegular(ctx context.Context) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var n int64
	for _, u := range s.m.users {
		if !u.IsAdmin {
			n++
		}
	}
	return n, nil
}

type memProjects struct{ m *Memory }

func (s *memProjects) Create(ctx context.Context, p *models.Project) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ensureID(&p.ID)
	ensureTime(&p.CreatedAt)
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	s.m.projects[p.ID] = *p
	return nil
}

func (s *memProjects) ByID(ctx context.Context, id string) (*models.Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	p, ok := s.m.projects[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

func (s *memProjects) Update(ctx context.Context, p *models.Project) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.projects[p.ID]; !ok {
		return errs.ErrNotFound
	}
	s.m.projects[p.ID] = *p
	return nil
}

func (s *memProjects) Delete(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.projects[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.m.projects, id)
	for cid, c := range s.m.comments {
		if c.ProjectID == id {
			delete(s.m.comments, cid)
		}
	}
	return nil
}

func (s *memProjects) All(ctx context.Context) ([]models.Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Project, 0, len(s.m.projects))
	for _, p := range s.m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memProjects) Published(ctx context.Context) ([]models.Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Project, 0, len(s.m.projects))
	for _, p := range s.m.projects {
		if p.Published() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Likes != out[j].Likes {
			return out[i].Likes > out[j].Likes
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memProjects) Recent(ctx context.Context, limit int) ([]models.Project, error) {
	all, _ := s.All(ctx)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memProjects) IncrementLikes(ctx context.Context, id string) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.projects[id]
	if !ok {
		return 0, errs.ErrNotFound
	}
	p.Likes++
	s.m.projects[id] = p
	return p.Likes, nil
}

func (s *memProjects) Stats(ctx context.Context) (ProjectStats, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var st ProjectStats
	for _, p := range s.m.projects {
		st.Total++
		st.TotalLikes += int64(p.Likes)
		if p.Published() {
			st.Published++
		}
	}
	return st, nil
}

type memComments struct{ m *Memory }

func (s *memComments) Create(ctx context.Context, c *models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ensureID(&c.ID)
	ensureTime(&c.CreatedAt)
	s.m.comments[c.ID] = *c
	return nil
}

func (s *memComments) ByProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Comment{}
	for _, c := range s.m.comments {
		if c.ProjectID == projectID {
			if u, ok := s.m.users[c.UserID]; ok {
				c.User = u
			}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memComments) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Comment, 0, len(s.m.comments))
	for _, c := range s.m.comments {
		if u, ok := s.m.users[c.UserID]; ok {
			c.User = u
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memComments) Count(ctx context.Context) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return int64(len(s.m.comments)), nil
}

type memAchievements struct{ m *Memory }

func (s *memAchievements) Create(ctx context.Context, a *models.Achievement) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ensureID(&a.ID)
	ensureTime(&a.CreatedAt)
	s.m.achievements[a.ID] = *a
	return nil
}

func (s *memAchievements) ByID(ctx context.Context, id string) (*models.Achievement, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	a, ok := s.m.achievements[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &a, nil
}

func (s *memAchievements) Update(ctx context.Context, a *models.Achievement) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.achievements[a.ID]; !ok {
		return errs.ErrNotFound
	}
	s.m.achievements[a.ID] = *a
	return nil
}

func (s *memAchievements) Delete(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.achievements[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.m.achievements, id)
	return nil
}

func (s *memAchievements) All(ctx context.Context) ([]models.Achievement, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Achievement, 0, len(s.m.achievements))
	for _, a := range s.m.achievements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *memAchievements) Count(ctx context.Context) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return int64(len(s.m.achievements)), nil
}

type memAbout struct{ m *Memory }

func (s *memAbout) Get(ctx context.Context) (*models.AboutInfo, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if s.m.about == nil {
		return nil, errs.ErrNotFound
	}
	info := *s.m.about
	return &info, nil
}

func (s *memAbout) Save(ctx context.Context, info *models.AboutInfo) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	info.ID = models.AboutInfoID
	info.UpdatedAt = time.Now()
	cp := *info
	s.m.about = &cp
	return nil
}

type memContacts struct{ m *Memory }

func (s *memContacts) Create(ctx context.Context, msg *models.ContactMessage) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ensureID(&msg.ID)
	ensureTime(&msg.CreatedAt)
	s.m.contacts[msg.ID] = *msg
	return nil
}
