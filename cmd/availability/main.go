package main

import (
	"courtside/internal/availability/handler"
	"courtside/internal/availability/repository"
	"courtside/internal/availability/service"
	"courtside/internal/availability/validator"
	"courtside/pkg/app"
	"courtside/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	settingValidator := validator.NewSettingValidator(cfg.Log)
	settingRepo := repository.NewMongoSlotSettingRepository(cfg)
	blockedRepo := repository.NewMongoBlockedSettingRepository(cfg)
	bookingLookup := repository.NewMongoBookingLookupRepository(cfg)
	availabilityService := service.NewAvailabilityService(
		settingRepo,
		blockedRepo,
		bookingLookup,
		settingValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
