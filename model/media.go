package model

import "time"

type GenerationKind string

const (
	GenerationKindImage GenerationKind = "image"
	GenerationKindVideo GenerationKind = "video"
)

type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "PENDING"
	GenerationStatusProcessing GenerationStatus = "PROCESSING"
	GenerationStatusCompleted  GenerationStatus = "COMPLETED"
	GenerationStatusFailed     GenerationStatus = "FAILED"
)

// GenerationJob tracks one asynchronous image/video generation. The dashboard
// polls the job until it leaves PENDING/PROCESSING.
type GenerationJob struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time        `gorm:"index:idx_job_email_created" json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	UserEmail    string           `gorm:"not null;index:idx_job_email_created" json:"user_email"`
	InfluencerID uint             `gorm:"not null" json:"influencer_id"`
	Kind         GenerationKind   `gorm:"not null" json:"kind"`
	Prompt       string           `gorm:"type:text" json:"prompt"`
	Status       GenerationStatus `gorm:"not null;default:PENDING" json:"status"`

	// ResultObject is the OSS key of the generated asset once completed.
	ResultObject string `json:"result_object"`
	ErrorText    string `gorm:"type:text" json:"error_text,omitempty"`
}

func (GenerationJob) TableName() string {
	return "generation_job"
}
