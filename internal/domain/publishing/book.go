package publishing

import "time"

type BookStatus string

const (
	StatusDraft      BookStatus = "Draft"
	StatusProcessing BookStatus = "Processing"
	StatusPublished  BookStatus = "Published"
)

func (s BookStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusProcessing, StatusPublished:
		return true
	}
	return false
}

type Book struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title  string     `gorm:"not null" json:"title"`
	Author string     `gorm:"not null" json:"author"`
	Genre  string     `json:"genre"`
	Status BookStatus `gorm:"type:text;not null;default:'Draft'" json:"status"`

	Blurb         string `gorm:"type:text" json:"blurb"`
	Keywords      string `gorm:"type:text" json:"keywords"`
	CoverImageURL string `gorm:"column:cover_image_url;type:text" json:"cover_image_url"`

	RightsTerritorial bool `gorm:"column:rights_territorial;not null;default:false" json:"-"`
	RightsTranslation bool `gorm:"column:rights_translation;not null;default:false" json:"-"`
	RightsAdaptation  bool `gorm:"column:rights_adaptation;not null;default:false" json:"-"`
	RightsAudio       bool `gorm:"column:rights_audio;not null;default:false" json:"-"`
	RightsDRM         bool `gorm:"column:rights_drm;not null;default:false" json:"-"`

	Splits        []BookSplit        `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"splits,omitempty"`
	Chapters      []BookChapter      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"chapters,omitempty"`
	Illustrations []BookIllustration `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"illustrations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string { return "books" }

type BookSplit struct {
	ID     uint    `gorm:"primaryKey" json:"-"`
	BookID uint    `gorm:"not null;index" json:"-"`
	Name   string  `gorm:"not null" json:"name"`
	Share  float64 `gorm:"type:numeric;not null" json:"share"`
}

func (BookSplit) TableName() string { return "book_splits" }
