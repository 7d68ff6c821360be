package main

import (
	"context"
	"log"

	"github.com/inovalink/inovalink-backend/config"
	"github.com/inovalink/inovalink-backend/internal/auth"
	"github.com/inovalink/inovalink-backend/internal/bootstrap"
	"github.com/inovalink/inovalink-backend/internal/gateway"
	"github.com/inovalink/inovalink-backend/internal/ledger"
	"github.com/inovalink/inovalink-backend/internal/session"
	"github.com/inovalink/inovalink-backend/internal/signup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	authClient, storeClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer storeClient.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	cache := gateway.NewProfileCache(redisClient, cfg.App.SessionTTL)
	gw := gateway.NewFirebaseGateway(authClient, storeClient, cache, cfg.Firebase.GatewayTimeout)

	sessions := session.NewStore(redisClient, cfg.App.SessionTTL)

	lgr := ledger.New(ledger.NewRedisPublisher(redisClient))
	if cfg.App.SeedProjects && cfg.App.Environment != "production" {
		lgr.Seed()
	}

	// Completing sign-up on either path drops the new account straight
	// into a session.
	onComplete := func(id *gateway.Identity, role gateway.Role, displayName string) {
		s := &session.Session{
			UID:         id.UID,
			Email:       id.Email,
			DisplayName: displayName,
			Role:        role,
			Language:    cfg.App.DefaultLanguage,
		}
		if err := sessions.Put(context.Background(), s); err != nil {
			log.Printf("post-signup session for %s failed: %v", id.UID, err)
		}
	}

	signups := signup.NewRegistry(gw, onComplete)

	janitor := signup.NewJanitor(signups, cfg.Signup.FlowTTL)
	janitor.Start()
	defer janitor.Stop()

	var exchanger *gateway.GoogleCodeExchanger
	if cfg.GoogleOAuth.Enabled() {
		exchanger = gateway.NewGoogleCodeExchanger(
			cfg.GoogleOAuth.ClientID,
			cfg.GoogleOAuth.ClientSecret,
			cfg.GoogleOAuth.RedirectURL,
		)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     "inovalink-backend",
		Version:         cfg.App.Version,
		DefaultLanguage: cfg.App.DefaultLanguage,
		SignupRateRPS:   cfg.Signup.RateRPS,
		SignupRateBurst: cfg.Signup.RateBurst,
		Auth:            authClient,
		Gateway:         gw,
		Sessions:        sessions,
		Ledger:          lgr,
		Signups:         signups,
		Exchanger:       exchanger,
		Redis:           redisClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
