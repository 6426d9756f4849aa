package response

import "time"

type InfluencerResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Persona      string    `json:"persona"`
	Appearance   string    `json:"appearance"`
	AvatarObject string    `json:"avatar_object"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetInfluencersResponse struct {
	Influencers []InfluencerResponse `json:"influencers"`
}
