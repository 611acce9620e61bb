package models

import "github.com/google/uuid"

// User represents a user in the system.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
}

// UserResponse represents a response with a single user.
type UserResponse struct {
	User User `json:"user"`
}

// UserRequest is the payload for creating a user.
type UserRequest struct {
	Username    string `json:"username" validate:"required,max=100"`
	DisplayName string `json:"displayName" validate:"required,max=254"`
	Email       string `json:"email" validate:"required,email"`
}
