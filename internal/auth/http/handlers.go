package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inovalink/inovalink-backend/internal/auth"
	"github.com/inovalink/inovalink-backend/internal/gateway"
	"github.com/inovalink/inovalink-backend/internal/i18n"
	"github.com/inovalink/inovalink-backend/internal/session"
)

type Handler struct {
	sessions        *session.Store
	gw              gateway.Gateway
	defaultLanguage string
}

func NewHandler(sessions *session.Store, gw gateway.Gateway, defaultLanguage string) *Handler {
	return &Handler{
		sessions:        sessions,
		gw:              gw,
		defaultLanguage: defaultLanguage,
	}
}

// SignIn establishes the session for an already-authenticated identity.
// The bearer token was verified by the middleware; the profile comes
// from the document store (or its cached copy when offline).
func (h *Handler) SignIn(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	ctx := c.Request.Context()

	profile, err := h.gw.FetchAccountProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, gateway.ErrProfileNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "account profile incomplete"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "fetch profile: " + err.Error()})
		return
	}

	s := &session.Session{
		UID:         uid,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Role:        profile.Role,
		Language:    h.defaultLanguage,
	}
	if existing, err := h.sessions.Get(ctx, uid); err == nil {
		// Keep the language the user already chose.
		s.Language = existing.Language
		s.CreatedAt = existing.CreatedAt
	}

	if err := h.sessions.Put(ctx, s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "create session: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

// SignOut revokes the identity's refresh tokens and tears the session
// down. Local teardown happens even when the provider call fails.
func (h *Handler) SignOut(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	ctx := c.Request.Context()

	gwErr := h.gw.SignOut(ctx, uid)
	if err := h.sessions.Delete(ctx, uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "delete session: " + err.Error()})
		return
	}

	if gwErr != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "sign out: " + gwErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetProfile returns the current account's profile record.
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	profile, err := h.gw.FetchAccountProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, gateway.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "fetch profile: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": profile})
}

type setLanguageReq struct {
	Language string `json:"language"`
}

// SetLanguage stores the session's display language.
func (h *Handler) SetLanguage(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var req setLanguageReq
	if err := c.ShouldBindJSON(&req); err != nil || !i18n.Supported(req.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unsupported language"})
		return
	}

	s, err := h.sessions.SetLanguage(c.Request.Context(), uid, req.Language)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}
