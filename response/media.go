package response

import (
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"
)

type GenerationJobResponse struct {
	ID           uint                   `json:"id"`
	InfluencerID uint                   `json:"influencer_id"`
	Kind         model.GenerationKind   `json:"kind"`
	Prompt       string                 `json:"prompt"`
	Status       model.GenerationStatus `json:"status"`
	ResultURL    string                 `json:"result_url,omitempty"`
	ErrorText    string                 `json:"error_text,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

type GetGenerationJobsResponse struct {
	Jobs []GenerationJobResponse `json:"jobs"`
}

// GetPolicyTokenResponse carries the credential for direct browser uploads
// to OSS.
type GetPolicyTokenResponse struct {
	Policy           string `json:"policy"`
	SecurityToken    string `json:"security_token,omitempty"`
	SignatureVersion string `json:"x_oss_signature_version"`
	Credential       string `json:"x_oss_credential"`
	Date             string `json:"x_oss_date"`
	Signature        string `json:"signature"`
	Host             string `json:"host"`
	Dir              string `json:"dir"`
}

type GetPresignedURLResponse struct {
	URL string `json:"url"`
}
