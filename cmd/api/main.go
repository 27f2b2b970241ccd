package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/hotelbook/booking-api/internal/config"
	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/domain/confirmation"
	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/middleware"
	"github.com/hotelbook/booking-api/internal/pkg/broker"
	"github.com/hotelbook/booking-api/internal/pkg/database"
	"github.com/hotelbook/booking-api/internal/pkg/email"
	"github.com/hotelbook/booking-api/internal/pkg/logger"
	pkgresponse "github.com/hotelbook/booking-api/internal/pkg/response"
	"github.com/hotelbook/booking-api/internal/pkg/storage"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting booking API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------- Catalog ----------
	catalog, err := room.OpenCatalog(ctx, cfg.CatalogSource, storage.Config{
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("Failed to load room catalog")
	}
	log.Info().Int("rooms", catalog.Len()).Msg("Room catalog loaded")

	// ---------- Confirmation sinks ----------
	sinks := []booking.Sink{confirmation.NewLogSink(cfg.Currency)}

	redisClient, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)
	if redisClient != nil {
		sinks = append(sinks, confirmation.NewRedisSink(redisClient, cfg.ConfirmationChannel, cfg.Currency))
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := broker.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		defer publisher.Close()

		amqpSink, err := confirmation.NewAMQPSink(publisher, cfg.ConfirmationExchange, cfg.Currency)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to declare confirmation exchange")
		}
		sinks = append(sinks, amqpSink)
	}

	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer database.ClosePostgres(db)

		backend := confirmation.NewBackendSink(db, cfg.Currency)
		if err := backend.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare reservations table")
		}
		sinks = append(sinks, backend)
	}

	if cfg.SendGridAPIKey != "" {
		mailer := email.NewService(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		})
		defer mailer.Close()
		sinks = append(sinks, confirmation.NewEmailSink(mailer, catalog, cfg.Currency))
	}

	fanout := confirmation.NewFanout(sinks...)
	log.Info().Int("sinks", fanout.Len()).Msg("Confirmation sinks wired")

	// ---------- Booking ----------
	simulator := payment.NewSimulator(
		payment.WithDelay(cfg.PaymentDelay),
		payment.WithOutcome(payment.NewWeightedOutcome(cfg.PaymentSuccessRate)),
	)

	hub := booking.NewHub()
	go hub.Run()
	defer hub.Shutdown()

	bookingService := booking.NewService(catalog, simulator, fanout, hub, cfg.SessionTTL)
	go bookingService.StartSweeper(ctx, time.Minute)

	sessions := middleware.NewSessionCodec(cfg.SessionHashKey, cfg.SessionBlockKey, cfg.SessionTTL, cfg.IsProduction())
	if len(cfg.SessionHashKey) == 0 {
		log.Warn().Msg("SESSION_HASH_KEY not set, booking cookies will not survive a restart")
	}

	r := newRouter(cfg, routes{
		rooms:    room.NewHandler(catalog, cfg.Currency),
		payments: payment.NewHandler(cfg.Currency),
		booking:  booking.NewHandler(bookingService, hub, sessions, cfg.AllowedOrigins),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

type routes struct {
	rooms    *room.Handler
	payments *payment.Handler
	booking  *booking.Handler
}

func newRouter(cfg *config.Config, h routes) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		// The booking routes carry the websocket stream, so they skip the timeout and compression.
		r.Mount("/booking", h.booking.Routes())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(10 * time.Second))
			r.Use(chimw.Compress(5))
			r.Mount("/rooms", h.rooms.Routes())
			r.Mount("/payment", h.payments.Routes())
		})
	})

	return r
}
