package i18n

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	fallback string
}

func Register(rg *gin.RouterGroup, fallback string) {
	h := &Handler{fallback: fallback}

	rg.GET("", h.list)
	rg.GET("/:lang", h.get)
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "languages": Languages()})
}

func (h *Handler) get(c *gin.Context) {
	lang := c.Param("lang")
	t, ok := Lookup(lang)
	if !ok {
		lang = h.fallback
		t = Get(lang, h.fallback)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "language": lang, "translations": t})
}
