package dao

import (
	"context"
	"errors"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"

	"gorm.io/gorm"
)

// ErrChatNotFound covers both a missing chat and a chat owned by another
// user; callers cannot tell the two apart.
var ErrChatNotFound = errors.New("chat not found")

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ChatStore is the persistence collaborator for chats and messages. It is
// constructed once at startup and injected into the streaming orchestrator.
type ChatStore struct {
	db *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{db: db}
}

func (s *ChatStore) CreateChat(ctx context.Context, chat *model.Chat) error {
	return s.db.WithContext(ctx).Create(chat).Error
}

func (s *ChatStore) GetChat(ctx context.Context, email, chatID string) (*model.Chat, error) {
	var chat model.Chat
	err := s.db.WithContext(ctx).
		Where("user_email = ? AND chat_id = ?", email, chatID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListChats returns one page of the user's chats, newest first, plus the
// total count. page is clamped to >= 1 and limit to [1, maxPageLimit].
func (s *ChatStore) ListChats(ctx context.Context, email string, page, limit int) ([]model.Chat, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&model.Chat{}).
		Where("user_email = ?", email).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var chats []model.Chat
	err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, 0, err
	}

	return chats, total, nil
}

func (s *ChatStore) UpdateChatTitle(ctx context.Context, email, chatID, title string) error {
	if _, err := s.GetChat(ctx, email, chatID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&model.Chat{}).
		Where("user_email = ? AND chat_id = ?", email, chatID).
		Update("title", title).Error
}

// DeleteChat removes the chat and its messages. Hard delete.
func (s *ChatStore) DeleteChat(ctx context.Context, email, chatID string) error {
	if _, err := s.GetChat(ctx, email, chatID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ? AND chat_id = ?", email, chatID).
			Delete(&model.Chat{}).Error; err != nil {
			return err
		}
		return tx.Where("chat_id = ?", chatID).
			Delete(&model.Message{}).Error
	})
}

// Messages returns the chat's full history in creation order.
func (s *ChatStore) Messages(ctx context.Context, chatID string) ([]model.Message, error) {
	var messages []model.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *ChatStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}
