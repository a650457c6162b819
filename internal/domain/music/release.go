package music

import "time"

type ReleaseStatus string

const (
	StatusSubmitted  ReleaseStatus = "Submitted"
	StatusInReview   ReleaseStatus = "In Review"
	StatusLive       ReleaseStatus = "Live"
	StatusProcessing ReleaseStatus = "Processing"
)

type Release struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title  string `gorm:"not null" json:"title"`
	Artist string `gorm:"not null" json:"artist"`
	Genre  string `json:"genre"`

	Status      ReleaseStatus `gorm:"type:text;not null;default:'Submitted'" json:"status"`
	ReleaseDate *time.Time    `gorm:"type:date" json:"release_date,omitempty"`

	Splits []ReleaseSplit `gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE;" json:"splits,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Release) TableName() string { return "releases" }

// ReleaseSplit is one collaborator's royalty share. Rows are only ever replaced as a set.
type ReleaseSplit struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	ReleaseID uint    `gorm:"not null;index" json:"-"`
	Name      string  `gorm:"not null" json:"name"`
	Share     float64 `gorm:"type:numeric;not null" json:"share"`
}

func (ReleaseSplit) TableName() string { return "release_splits" }
