package signup

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

type Handler struct {
	registry  *Registry
	exchanger *gateway.GoogleCodeExchanger
}

// Register wires the sign-up endpoints. exchanger may be nil when the
// server-side Google OAuth flow is not configured.
func Register(rg *gin.RouterGroup, registry *Registry, exchanger *gateway.GoogleCodeExchanger) {
	h := &Handler{registry: registry, exchanger: exchanger}

	rg.POST("/start", h.start)
	rg.POST("", h.submitCredential)
	rg.GET("/google/url", h.googleAuthURL)
	rg.POST("/google", h.authenticateFederated)
	rg.POST("/google/complete", h.completeFederated)
	rg.POST("/google/back", h.back)
	rg.GET("/state", h.state)
	rg.DELETE("", h.close)
}

type startReq struct {
	FlowID string `json:"flow_id"`
	Path   Path   `json:"path"`
}

// start opens (or switches) a sign-up flow on the requested path.
// Switching discards the other path's draft; an in-flight gateway call
// for the abandoned path is fenced out, not cancelled.
func (h *Handler) start(c *gin.Context) {
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, f := h.registry.GetOrCreate(req.FlowID)
	switch req.Path {
	case PathCredential:
		f.StartCredential()
	case PathFederated:
		f.StartFederated()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid path"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "flow_id": id, "flow": f.Snapshot()})
}

type credentialReq struct {
	FlowID      string `json:"flow_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (h *Handler) submitCredential(c *gin.Context) {
	var req credentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, f := h.registry.GetOrCreate(req.FlowID)

	result, err := f.SubmitCredential(c.Request.Context(), CredentialInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        gateway.Role(req.Role),
	})
	if err != nil {
		h.renderError(c, id, f, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "flow_id": id, "account": result})
}

type federatedAuthReq struct {
	FlowID  string `json:"flow_id"`
	IDToken string `json:"id_token"`
	Code    string `json:"code"`
}

// googleAuthURL hands the client the consent-screen URL for the
// server-side OAuth flow. The flow id doubles as the state token.
func (h *Handler) googleAuthURL(c *gin.Context) {
	if h.exchanger == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": "google oauth not configured"})
		return
	}

	id, f := h.registry.GetOrCreate(c.Query("flow_id"))
	f.StartFederated()

	c.JSON(http.StatusOK, gin.H{"ok": true, "flow_id": id, "url": h.exchanger.AuthURL(id)})
}

func (h *Handler) authenticateFederated(c *gin.Context) {
	var req federatedAuthReq
	if err := c.ShouldBindJSON(&req); err != nil || (req.IDToken == "" && req.Code == "") {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, f := h.registry.GetOrCreate(req.FlowID)

	idToken := req.IDToken
	if idToken == "" {
		if h.exchanger == nil {
			c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": "google oauth not configured"})
			return
		}
		exchanged, err := h.exchanger.Exchange(c.Request.Context(), req.Code)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "flow_id": id, "error": err.Error()})
			return
		}
		idToken = exchanged
	}

	if err := f.AuthenticateFederated(c.Request.Context(), idToken); err != nil {
		h.renderError(c, id, f, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "flow_id": id, "flow": f.Snapshot()})
}

type federatedCompleteReq struct {
	FlowID      string `json:"flow_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (h *Handler) completeFederated(c *gin.Context) {
	var req federatedCompleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	f, err := h.registry.Get(req.FlowID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "signup flow not found"})
		return
	}

	result, err := f.CompleteFederated(c.Request.Context(), req.DisplayName, gateway.Role(req.Role))
	if err != nil {
		h.renderError(c, req.FlowID, f, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "flow_id": req.FlowID, "account": result})
}

type flowIDReq struct {
	FlowID string `json:"flow_id"`
}

func (h *Handler) back(c *gin.Context) {
	var req flowIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	f, err := h.registry.Get(req.FlowID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "signup flow not found"})
		return
	}

	f.Back()
	c.JSON(http.StatusOK, gin.H{"ok": true, "flow_id": req.FlowID, "flow": f.Snapshot()})
}

func (h *Handler) state(c *gin.Context) {
	id := c.Query("flow_id")
	f, err := h.registry.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "signup flow not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "flow_id": id, "flow": f.Snapshot()})
}

// close abandons the flow. The registry drops it; any in-flight result
// is discarded by the flow's generation fence.
func (h *Handler) close(c *gin.Context) {
	var req flowIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	h.registry.Remove(req.FlowID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) renderError(c *gin.Context, id string, f *Flow, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "flow_id": id, "error": verr.Message, "field": verr.Field})
		return
	}

	if errors.Is(err, ErrStaleResponse) {
		// The user already left this path; the late result is dropped
		// and the current state reported as-is.
		c.JSON(http.StatusOK, gin.H{"ok": true, "flow_id": id, "stale": true, "flow": f.Snapshot()})
		return
	}

	var gerr *GatewayError
	if errors.As(err, &gerr) {
		status := http.StatusBadGateway
		if errors.Is(gerr.Err, gateway.ErrAlreadyExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"ok": false, "flow_id": id, "error": gerr.Message, "flow": f.Snapshot()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "flow_id": id, "error": err.Error()})
}
