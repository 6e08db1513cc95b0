package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lac-hong-legacy/ven_shop/services"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using environment")
	}
	shared.ConfigureLogging()

	ctx, err := context.NewCtx(
		&services.DatabaseService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.EmailService{},
		&services.JWTService{},
		&services.AuthService{},
		&services.RateLimitService{},

		&services.CatalogService{},
		&services.CartService{},
		&services.NewsletterService{},
		&services.ContactService{},
		&services.MediaService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service exited")
		return
	}
}
