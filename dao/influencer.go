package dao

import (
	"errors"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"

	"gorm.io/gorm"
)

var ErrInfluencerNotFound = errors.New("influencer not found")

func CreateInfluencer(influencer *model.Influencer) error {
	return DB.Create(influencer).Error
}

func GetInfluencer(email string, id uint) (*model.Influencer, error) {
	var influencer model.Influencer
	err := DB.Where("user_email = ? AND id = ?", email, id).
		First(&influencer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInfluencerNotFound
		}
		return nil, err
	}
	return &influencer, nil
}

func GetInfluencersByEmail(email string) ([]model.Influencer, error) {
	var influencers []model.Influencer
	if err := DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&influencers).Error; err != nil {
		return nil, err
	}
	return influencers, nil
}

func UpdateInfluencer(email string, id uint, updates map[string]any) error {
	if _, err := GetInfluencer(email, id); err != nil {
		return err
	}
	return DB.Model(&model.Influencer{}).
		Where("user_email = ? AND id = ?", email, id).
		Updates(updates).Error
}

func DeleteInfluencer(email string, id uint) error {
	if _, err := GetInfluencer(email, id); err != nil {
		return err
	}
	return DB.Where("user_email = ? AND id = ?", email, id).
		Delete(&model.Influencer{}).Error
}
