package model

import "time"

// Idea is a content idea in the user's library. Ideas are indexed into Milvus
// asynchronously for semantic search.
type Idea struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_idea_email_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserEmail string    `gorm:"not null;index:idx_idea_email_created" json:"user_email"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
}

func (Idea) TableName() string {
	return "idea"
}
