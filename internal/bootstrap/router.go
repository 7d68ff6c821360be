package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/inovalink/inovalink-backend/internal/api/http"
	"github.com/inovalink/inovalink-backend/internal/api/http/middleware"
	"github.com/inovalink/inovalink-backend/internal/auth"
	authhttp "github.com/inovalink/inovalink-backend/internal/auth/http"
	authmw "github.com/inovalink/inovalink-backend/internal/auth/middleware"
	"github.com/inovalink/inovalink-backend/internal/gateway"
	"github.com/inovalink/inovalink-backend/internal/i18n"
	"github.com/inovalink/inovalink-backend/internal/ledger"
	"github.com/inovalink/inovalink-backend/internal/session"
	"github.com/inovalink/inovalink-backend/internal/signup"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	DefaultLanguage string
	SignupRateRPS   float64
	SignupRateBurst int

	Auth      *fbauth.Client
	Gateway   gateway.Gateway
	Sessions  *session.Store
	Ledger    *ledger.Ledger
	Signups   *signup.Registry
	Exchanger *gateway.GoogleCodeExchanger
	Redis     *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	i18n.Register(api.Group("/i18n"), dep.DefaultLanguage)

	signupGroup := api.Group("/auth/signup")
	signupGroup.Use(middleware.RateLimitMiddleware(dep.SignupRateRPS, dep.SignupRateBurst))
	signup.Register(signupGroup, dep.Signups, dep.Exchanger)

	authGroup := api.Group("/auth")
	authGroup.Use(authmw.FirebaseAuthMiddleware(dep.Auth))
	authhttp.NewHandler(dep.Sessions, dep.Gateway, dep.DefaultLanguage).Register(authGroup)

	projectsGroup := api.Group("/projects")
	projectsGroup.Use(authmw.FirebaseAuthMiddleware(dep.Auth))
	projectsGroup.Use(auth.WithAccount(dep.Sessions, dep.Gateway, dep.DefaultLanguage))
	ledger.Register(projectsGroup, dep.Ledger)

	return r
}
