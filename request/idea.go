package request

type CreateIdeaRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdateIdeaRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
