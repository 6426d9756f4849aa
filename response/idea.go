package response

import "time"

type IdeaResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type GetIdeasResponse struct {
	Ideas []IdeaResponse `json:"ideas"`
}

type IdeaSearchHit struct {
	IdeaID uint    `json:"idea_id"`
	Text   string  `json:"text"`
	Score  float32 `json:"score"`
}

type SearchIdeasResponse struct {
	Hits []IdeaSearchHit `json:"hits"`
}
