package dao

import (
	"errors"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"

	"gorm.io/gorm"
)

var ErrGenerationJobNotFound = errors.New("generation job not found")

func CreateGenerationJob(job *model.GenerationJob) error {
	return DB.Create(job).Error
}

func GetGenerationJob(email string, id uint) (*model.GenerationJob, error) {
	var job model.GenerationJob
	err := DB.Where("user_email = ? AND id = ?", email, id).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func GetGenerationJobByID(id uint) (*model.GenerationJob, error) {
	var job model.GenerationJob
	if err := DB.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func GetGenerationJobsByEmail(email string) ([]model.GenerationJob, error) {
	var jobs []model.GenerationJob
	if err := DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func UpdateGenerationJobStatus(id uint, status model.GenerationStatus, updates map[string]any) error {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = status
	return DB.Model(&model.GenerationJob{}).
		Where("id = ?", id).
		Updates(updates).Error
}
