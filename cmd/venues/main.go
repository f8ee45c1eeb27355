package main

import (
	"courtside/internal/venues/handler"
	"courtside/internal/venues/repository"
	"courtside/internal/venues/service"
	"courtside/internal/venues/validator"
	"courtside/pkg/app"
	"courtside/pkg/config"
)

const ServiceName = "venues"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Venues service")
	venueService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewVenueHandler(venueService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.VenueService {
	venueValidator := validator.NewVenueValidator(cfg.Log)
	venueRepo := repository.NewMongoVenueRepository(cfg)
	sectionRepo := repository.NewMongoSectionRepository(cfg)
	venueService := service.NewVenueService(
		venueRepo,
		sectionRepo,
		venueValidator,
		cfg,
	)

	cfg.Log.Info("Venue service initialized", "database", cfg.MongoDatabaseName)
	return venueService
}
