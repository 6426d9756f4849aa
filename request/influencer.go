package request

type CreateInfluencerRequest struct {
	Name         string `json:"name" binding:"required"`
	Persona      string `json:"persona"`
	Appearance   string `json:"appearance"`
	AvatarObject string `json:"avatar_object"`
}

type UpdateInfluencerRequest struct {
	Name         *string `json:"name"`
	Persona      *string `json:"persona"`
	Appearance   *string `json:"appearance"`
	AvatarObject *string `json:"avatar_object"`
}
