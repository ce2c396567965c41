package domain

// Identity holds the claims carried by a credential token.
type Identity struct {
	UserID   string
	Username string
	Email    string
}
