package models

import "time"

// AboutInfoID is the fixed primary key of the singleton about row.
const AboutInfoID = 1

// AboutInfo holds the about-page content. At most one row exists.
type AboutInfo struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Skills       StringList `gorm:"type:text" json:"skills"`
	ContactEmail string     `gorm:"size:120;not null" json:"contact_email"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
