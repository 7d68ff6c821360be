package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inovalink/inovalink-backend/internal/gateway"
	"github.com/inovalink/inovalink-backend/internal/session"
)

// WithAccount resolves the authenticated principal's session, creating
// one from the stored profile on first request after sign-in. Runs
// after FirebaseAuthMiddleware.
func WithAccount(sessions *session.Store, gw gateway.Gateway, defaultLanguage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := UserFirebaseUID(c)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		s, err := sessions.Get(ctx, uid)
		if errors.Is(err, session.ErrSessionNotFound) {
			profile, perr := gw.FetchAccountProfile(ctx, uid)
			if perr != nil {
				if errors.Is(perr, gateway.ErrProfileNotFound) {
					c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "account profile incomplete"})
				} else {
					c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "fetch profile: " + perr.Error()})
				}
				c.Abort()
				return
			}

			s = &session.Session{
				UID:         uid,
				Email:       profile.Email,
				DisplayName: profile.DisplayName,
				Role:        profile.Role,
				Language:    defaultLanguage,
			}
			if err := sessions.Put(ctx, s); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "create session: " + err.Error()})
				c.Abort()
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "load session: " + err.Error()})
			c.Abort()
			return
		}

		if s.Email != "" {
			c.Set(CtxEmail, s.Email)
		}
		c.Set(CtxDisplayName, s.DisplayName)
		c.Set(CtxRole, string(s.Role))
		c.Set(CtxLanguage, s.Language)
		c.Next()
	}
}
