package request

type CreateGenerationRequest struct {
	InfluencerID uint   `json:"influencer_id" binding:"required"`
	Prompt       string `json:"prompt" binding:"required"`
}
