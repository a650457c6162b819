package publishing

// BookChapter position is ChapterOrder, always 0..N-1 for a book after a replace.
type BookChapter struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	BookID       uint   `gorm:"not null;index:idx_book_chapters_book_order,priority:1" json:"-"`
	ChapterOrder int    `gorm:"column:chapter_order;not null;index:idx_book_chapters_book_order,priority:2" json:"chapter_order"`
	Title        string `gorm:"not null" json:"title"`
	Content      string `gorm:"type:text" json:"content"`
}

func (BookChapter) TableName() string { return "book_chapters" }
