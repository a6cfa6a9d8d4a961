package model

// Principal is the identity derived from a verified user. It is never
// persisted and never carries secret material.
type Principal struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func NewPrincipal(user *User) *Principal {
	return &Principal{
		UserID:   user.ID,
		Username: user.Email,
	}
}
