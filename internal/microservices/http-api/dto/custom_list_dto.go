package dto

type CreateListRequest struct {
	Name string `json:"name" binding:"max=100"`
}

type AddToListRequest struct {
	ListID      int64  `json:"listId" binding:"required"`
	APIID       string `json:"api_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Title       string `json:"title"`
	PosterURL   string `json:"poster_url"`
}
