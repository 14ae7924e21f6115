package entity

// UserLoginData is what the token middleware resolves from a bearer token.
// Accounts themselves are managed outside this service.
type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
