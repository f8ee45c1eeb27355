package main

import (
	"courtside/internal/bookings/events"
	"courtside/internal/bookings/handler"
	"courtside/internal/bookings/repository"
	"courtside/internal/bookings/service"
	"courtside/internal/bookings/validator"
	"courtside/pkg/app"
	"courtside/pkg/config"
	"courtside/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	refsRepo := repository.NewMongoReferenceRepository(cfg)
	publisher := events.NewPublisher(initProducer(cfg), cfg.Log)
	bookingService := service.NewBookingService(
		bookingRepo,
		refsRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initProducer returns nil when no brokers are configured; the publisher
// treats a nil producer as events disabled.
func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.BookingEventTopic)
	if err != nil {
		cfg.Log.Error("Failed to initialize Kafka producer, booking events disabled", "error", err)
		return nil
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.BookingEventTopic)
	return producer
}
