package dao

import (
	"errors"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"

	"gorm.io/gorm"
)

var ErrIdeaNotFound = errors.New("idea not found")

func CreateIdea(idea *model.Idea) error {
	return DB.Create(idea).Error
}

func GetIdea(email string, id uint) (*model.Idea, error) {
	var idea model.Idea
	err := DB.Where("user_email = ? AND id = ?", email, id).
		First(&idea).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return &idea, nil
}

func GetIdeasByEmail(email string) ([]model.Idea, error) {
	var ideas []model.Idea
	if err := DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func UpdateIdea(email string, id uint, updates map[string]any) error {
	if _, err := GetIdea(email, id); err != nil {
		return err
	}
	return DB.Model(&model.Idea{}).
		Where("user_email = ? AND id = ?", email, id).
		Updates(updates).Error
}

func DeleteIdea(email string, id uint) error {
	if _, err := GetIdea(email, id); err != nil {
		return err
	}
	return DB.Where("user_email = ? AND id = ?", email, id).
		Delete(&model.Idea{}).Error
}
