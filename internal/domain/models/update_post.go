package model

// UpdatePostDTO carries the fields a post update may touch. Only the
// published flag is reachable, and only towards true.
type UpdatePostDTO struct {
	Published *bool `json:"published,omitempty"`
}
