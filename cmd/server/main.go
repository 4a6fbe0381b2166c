package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carwash-backend/internal/config"
	"carwash-backend/internal/database"
	"carwash-backend/internal/handlers"
	"carwash-backend/internal/logger"
	"carwash-backend/internal/notify"
	"carwash-backend/internal/queue"
	"carwash-backend/internal/repository"
	"carwash-backend/internal/router"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("could not load config")
	}

	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	db := client.Database(cfg.DBName)
	log.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")

	userRepo := repository.NewUserRepo(db)
	contactRepo := repository.NewContactRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := userRepo.EnsureIndexes(idxCtx); err != nil {
		log.Warn().Err(err).Msg("failed to create user indexes")
	}
	if err := bookingRepo.EnsureIndexes(idxCtx); err != nil {
		log.Warn().Err(err).Msg("failed to create booking indexes")
	}
	cancel()

	notifier := notify.New(cfg.ResendAPIKey, cfg.NotifyFrom, cfg.NotifyTo, log)

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := queue.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue, log)
		if err != nil {
			log.Warn().Err(err).Msg("broker unavailable, booking events disabled")
		} else {
			publisher = p
			log.Info().Str("queue", cfg.AMQPQueue).Msg("publishing booking events")
		}
	}
	defer publisher.Close()

	admins := cfg.Admins()
	if len(admins) == 0 {
		log.Warn().Msg("no admin emails configured, every listing is filtered by email")
	}

	handler := router.New(log, cfg.AllowedOrigins(), router.Handlers{
		Auth:    handlers.NewAuthHandler(userRepo),
		Contact: handlers.NewContactHandler(contactRepo, notifier),
		Booking: handlers.NewBookingHandler(bookingRepo, notifier, publisher, admins),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("car wash backend starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
