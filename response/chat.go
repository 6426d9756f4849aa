package response

import (
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"
)

type ChatResponse struct {
	ChatID       string    `json:"chat_id"`
	Title        string    `json:"title"`
	InfluencerID *uint     `json:"influencer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetChatsResponse struct {
	Chats      []ChatResponse `json:"chats"`
	Pagination Pagination     `json:"pagination"`
}

type MessageResponse struct {
	CreatedAt   time.Time          `json:"created_at"`
	Role        string             `json:"role"`
	Content     string             `json:"content"`
	Parts       []model.Part       `json:"parts"`
	Attachments []model.Attachment `json:"attachments,omitempty"`
}

type GetChatResponse struct {
	Chat     ChatResponse      `json:"chat"`
	Messages []MessageResponse `json:"messages"`
}
