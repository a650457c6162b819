package tasks

import (
	"fmt"
	"time"
)

// Kind selects which task table a Task lives in. Both tables share one shape.
type Kind string

const (
	KindMusic      Kind = "music"
	KindPublishing Kind = "publishing"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMusic, KindPublishing:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown task kind %q", s)
}

func (k Kind) Table() string {
	if k == KindPublishing {
		return "publishing_tasks"
	}
	return "music_tasks"
}

// Kinds lists every task table, used by migrations.
func Kinds() []Kind { return []Kind{KindMusic, KindPublishing} }

type Task struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	DueDate   *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
}
