package session

import (
	"errors"
	"time"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

var ErrSessionNotFound = errors.New("session not found")

// Session holds the locally authenticated principal and their chosen
// display language. It lives from sign-in (or signup completion) until
// sign-out.
type Session struct {
	UID         string       `json:"uid"`
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	Role        gateway.Role `json:"role"`
	Language    string       `json:"language"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
