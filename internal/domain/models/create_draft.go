package model

type CreateDraftDTO struct {
	Title       string  `json:"title"`
	Content     *string `json:"content,omitempty"`
	AuthorEmail string  `json:"authorEmail"`
}
