package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project status values. Only published projects are publicly visible.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Project is a portfolio entry with a monotonically non-decreasing like
// counter. Deleting a project removes its comments.
type Project struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	Status      string     `gorm:"size:20;default:'draft'" json:"status"`
	Link        string     `gorm:"size:500" json:"link,omitempty"`
	Image       string     `gorm:"size:255" json:"image,omitempty"`
	Likes       int        `gorm:"default:0" json:"likes"`
	CreatedAt   time.Time  `json:"created_at"`
	Comments    []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Published reports whether the project is eligible for public views.
func (p *Project) Published() bool {
	return p.Status == StatusPublished
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}
