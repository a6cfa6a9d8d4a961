package model

// PostFilters narrows a post listing. Nil fields do not filter.
// Search matches posts whose title or content contains the value.
type PostFilters struct {
	Published *bool
	Search    *string
}
