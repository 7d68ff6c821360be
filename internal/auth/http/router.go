package http

import "github.com/gin-gonic/gin"

// Register wires the authenticated account routes. The group must run
// FirebaseAuthMiddleware first.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/signin", h.SignIn)
	rg.POST("/signout", h.SignOut)
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/language", h.SetLanguage)
}
