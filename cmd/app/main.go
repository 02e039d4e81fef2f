package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/auth"
	"github.com/Domenick1991/railbooking/internal/bootstrap"
	"github.com/Domenick1991/railbooking/internal/cache"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/Domenick1991/railbooking/internal/service/schedules"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.JourneysCacheTTLSeconds)*time.Second,
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	trainRepo := repository.NewTrainRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		scheduleRepo,
		trainRepo,
		redisCache,
		producer,
		cfg.Kafka.TicketsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	adminService := schedules.NewScheduleAdminService(trainRepo, scheduleRepo)
	authService := auth.NewAuthService(userRepo, redisCache)

	if err := bootstrap.Run(ctx, cfg, bookingService, adminService, authService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
