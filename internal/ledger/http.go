package ledger

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inovalink/inovalink-backend/internal/auth"
	"github.com/inovalink/inovalink-backend/internal/gateway"
)

type Handler struct {
	ledger *Ledger
}

func Register(rg *gin.RouterGroup, l *Ledger) {
	h := &Handler{ledger: l}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.POST("/:id/replies", h.reply)
}

type createReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      string   `json:"budget"`
	Deadline    string   `json:"deadline"`
	Skills      []string `json:"skills"`
}

func (h *Handler) create(c *gin.Context) {
	// Only business accounts post projects.
	if auth.AccountRole(c) != gateway.RoleBusiness {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "business account required"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	postedBy := auth.AccountEmail(c)
	if postedBy == "" {
		postedBy = auth.UserFirebaseUID(c)
	}

	p, err := h.ledger.AddProject(ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Skills:      req.Skills,
		PostedBy:    postedBy,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.ledger.ListProjects()})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.ledger.FindProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type replyReq struct {
	Message string `json:"message"`
}

func (h *Handler) reply(c *gin.Context) {
	var req replyReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	r, err := h.ledger.AddReply(c.Param("id"), ReplyInput{
		UserID:     auth.UserFirebaseUID(c),
		UserName:   auth.AccountName(c),
		Message:    req.Message,
		IsBusiness: auth.AccountRole(c) == gateway.RoleBusiness,
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Message, "field": verr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "reply": r})
}
