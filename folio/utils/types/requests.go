package types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ContactRequest is the body of POST /api/messages (the contact form).
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
