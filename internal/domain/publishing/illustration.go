package publishing

import "time"

type BookIllustration struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	BookID uint   `gorm:"not null;index" json:"-"`
	URL    string `gorm:"column:url;type:text;not null" json:"url"`
	Prompt string `gorm:"type:text" json:"prompt"`

	CreatedAt time.Time `json:"created_at"`
}

func (BookIllustration) TableName() string { return "book_illustrations" }
