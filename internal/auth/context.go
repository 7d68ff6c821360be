package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxDisplayName = "display_name"
	CtxRole        = "role"
	CtxLanguage    = "language"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by FirebaseAuthMiddleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// AccountEmail returns the authenticated account's email, if known.
func AccountEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// AccountName returns the authenticated account's display name.
// Set by WithAccount from the session record.
func AccountName(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxDisplayName))
}

// AccountRole returns the authenticated account's role tag.
func AccountRole(c *gin.Context) gateway.Role {
	return gateway.Role(c.GetString(CtxRole))
}

// AccountLanguage returns the session's display language.
func AccountLanguage(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxLanguage))
}
