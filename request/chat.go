package request

import "github.com/TomarJatin/Ai-Influencer-sub000/model"

type CreateChatRequest struct {
	InfluencerID *uint `json:"influencer_id"`
}

type UpdateChatTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

// IncomingMessage is the wire shape of a new user turn. Parts and attachments
// are optional; plain content-only messages are the common case.
type IncomingMessage struct {
	Role        string             `json:"role" binding:"required"`
	Content     string             `json:"content"`
	Parts       []model.Part       `json:"parts"`
	Attachments []model.Attachment `json:"experimental_attachments"`
}

type SendMessageRequest struct {
	Message IncomingMessage `json:"message" binding:"required"`

	// Model identifies the language model as "<provider>/<model-name>".
	Model string `json:"model" binding:"required"`
}
