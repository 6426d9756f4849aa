package model

import "time"

// Influencer is a synthetic persona the user chats as and generates media for.
type Influencer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_influencer_email_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserEmail string    `gorm:"not null;index:idx_influencer_email_created" json:"user_email"`
	Name      string    `gorm:"not null" json:"name"`

	// Persona is the free-text character description appended to the chat
	// system prompt when a chat is bound to this influencer.
	Persona    string `gorm:"type:text" json:"persona"`
	Appearance string `gorm:"type:text" json:"appearance"`

	// AvatarObject is the OSS key of the avatar image, without the bucket name.
	AvatarObject string `json:"avatar_object"`
}

func (Influencer) TableName() string {
	return "influencer"
}
