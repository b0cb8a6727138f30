package main

import (
	"log"

	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/attendance"
	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/event"
	"github.com/rjimenez-dev/runclub/internal/user"
	"github.com/rjimenez-dev/runclub/routes"
)

// @title RunClub REST API
// @version 1.0
// @description Multi-tenant API for managing running clubs: rosters, roles, training sessions and attendance.
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&club.Club{}, &club.Membership{},
		&event.Event{}, &attendance.Attendance{},
	)
	if err != nil {
		config.Log.Fatal().Err(err).Msg("AutoMigrate failed")
	}
	config.Log.Info().Msg("AutoMigrate successful")

	r := routes.SetupRoutes()

	config.Log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		config.Log.Fatal().Err(err).Msg("Failed to run server")
	}
}
