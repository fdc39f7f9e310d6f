package main

import (
	appointmenthandler "github.com/Farhatmahi/dentist-spa-server/internal/appointments/handler"
	appointmentrepo "github.com/Farhatmahi/dentist-spa-server/internal/appointments/repository"
	appointmentservice "github.com/Farhatmahi/dentist-spa-server/internal/appointments/service"
	authhandler "github.com/Farhatmahi/dentist-spa-server/internal/auth/handler"
	authmiddleware "github.com/Farhatmahi/dentist-spa-server/internal/auth/middleware"
	authservice "github.com/Farhatmahi/dentist-spa-server/internal/auth/service"
	bookinghandler "github.com/Farhatmahi/dentist-spa-server/internal/bookings/handler"
	bookingrepo "github.com/Farhatmahi/dentist-spa-server/internal/bookings/repository"
	bookingservice "github.com/Farhatmahi/dentist-spa-server/internal/bookings/service"
	bookingvalidator "github.com/Farhatmahi/dentist-spa-server/internal/bookings/validator"
	doctorhandler "github.com/Farhatmahi/dentist-spa-server/internal/doctors/handler"
	doctorrepo "github.com/Farhatmahi/dentist-spa-server/internal/doctors/repository"
	doctorservice "github.com/Farhatmahi/dentist-spa-server/internal/doctors/service"
	doctorvalidator "github.com/Farhatmahi/dentist-spa-server/internal/doctors/validator"
	paymenthandler "github.com/Farhatmahi/dentist-spa-server/internal/payments/handler"
	paymentrepo "github.com/Farhatmahi/dentist-spa-server/internal/payments/repository"
	paymentservice "github.com/Farhatmahi/dentist-spa-server/internal/payments/service"
	userhandler "github.com/Farhatmahi/dentist-spa-server/internal/users/handler"
	userrepo "github.com/Farhatmahi/dentist-spa-server/internal/users/repository"
	userservice "github.com/Farhatmahi/dentist-spa-server/internal/users/service"
	uservalidator "github.com/Farhatmahi/dentist-spa-server/internal/users/validator"

	"github.com/Farhatmahi/dentist-spa-server/internal/payments/gateway"
	"github.com/Farhatmahi/dentist-spa-server/pkg/app"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	"github.com/Farhatmahi/dentist-spa-server/pkg/contracts"
	"github.com/Farhatmahi/dentist-spa-server/pkg/events"
	"github.com/joho/godotenv"
)

const ServiceName = "doctors-portal"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting doctors portal server")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, initHandlers(cfg, publisher)...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	cfg.Log.Info("Kafka publisher initialized", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaBookingTopic)
	return publisher
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	userRepo := userrepo.NewMongoUserRepository(cfg)
	optionRepo := appointmentrepo.NewMongoAppointmentOptionRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	doctorRepo := doctorrepo.NewMongoDoctorRepository(cfg)
	paymentRepo := paymentrepo.NewMongoPaymentRepository(cfg)

	userService := userservice.NewUserService(userRepo, uservalidator.NewUserValidator(), cfg)
	tokenService := authservice.NewTokenService(userRepo, cfg)
	auth := authmiddleware.NewAuthenticator(tokenService, userService, cfg.Log)

	availabilityService := appointmentservice.NewAvailabilityService(optionRepo, bookingRepo, cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		optionRepo,
		bookingvalidator.NewBookingValidator(),
		publisher,
		cfg,
	)
	doctorService := doctorservice.NewDoctorService(doctorRepo, optionRepo, doctorvalidator.NewDoctorValidator(), cfg)
	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, cfg.Log)
	paymentService := paymentservice.NewPaymentService(paymentRepo, bookingRepo, stripeGateway, publisher, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		appointmenthandler.NewAppointmentOptionHandler(availabilityService, cfg.Log),
		authhandler.NewTokenHandler(tokenService, cfg.Log),
		userhandler.NewUserHandler(userService, auth, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, auth, cfg.Log),
		doctorhandler.NewDoctorHandler(doctorService, auth, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, cfg.Log),
	}
}
