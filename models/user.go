package models

// User is the authenticated profile returned by the login and verify endpoints
type User struct {
	ID       string `json:"id,omitempty"`
	MongoID  string `json:"_id,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /users/login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// VerifyResponse is returned by GET /users/verify
type VerifyResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
