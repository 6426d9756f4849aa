package model

import (
	"encoding/json"
	"time"
)

// DefaultChatTitle is the sentinel a chat is created with. The first user
// message triggers auto-title generation only while the title still equals it.
const DefaultChatTitle = "New Chat"

type Chat struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserEmail    string    `gorm:"not null;index" json:"user_email"`
	ChatID       string    `gorm:"not null;uniqueIndex" json:"chat_id"`
	Title        string    `json:"title"`
	InfluencerID *uint     `json:"influencer_id,omitempty"`
}

func (Chat) TableName() string {
	return "chat"
}

// Message roles follow the model-interaction contract.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Part is one typed segment of a message. Parts are the authoritative
// representation used to replay history into later model calls; Content on
// Message is the concatenated text parts kept for display convenience.
type Part struct {
	Type           string          `json:"type"`
	Text           string          `json:"text,omitempty"`
	ToolInvocation *ToolInvocation `json:"toolInvocation,omitempty"`
}

const (
	PartTypeText           = "text"
	PartTypeReasoning      = "reasoning"
	PartTypeToolInvocation = "tool-invocation"
)

type ToolInvocation struct {
	ID       string          `json:"id"`
	ToolName string          `json:"toolName"`
	Args     json.RawMessage `json:"args,omitempty"`
	Result   *ToolResult     `json:"result,omitempty"`
}

// ToolResult is the model-visible outcome of a tool call. Executor failures
// are reported here as data instead of aborting the stream.
type ToolResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Attachment struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Message carries a composite index (chat_id, created_at) for ordered history reads.
type Message struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `gorm:"index:idx_chat_created" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	ChatID      string       `gorm:"not null;index:idx_chat_created" json:"chat_id"`
	Role        string       `gorm:"not null" json:"role"`
	Content     string       `gorm:"type:text" json:"content"`
	Parts       []Part       `gorm:"type:json;serializer:json" json:"parts"`
	Attachments []Attachment `gorm:"type:json;serializer:json" json:"attachments,omitempty"`
}

func (Message) TableName() string {
	return "chat_message"
}
