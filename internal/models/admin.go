package models

// Admin is one registered administrator allowed to write records.
type Admin struct {
	Email string `json:"email"`
}

// AdminSession is the result of a successful admin gate check.
type AdminSession struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// AdminAuthRequest is the body of the admin gate endpoint.
type AdminAuthRequest struct {
	Email string `json:"email"`
}

// AdminAuthResponse mirrors the gate contract: success with the normalized
// email and a session token, or a failure message.
type AdminAuthResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}
