package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/config"
	controllers "github.com/henriquelv/rottava-agro-pet-sub001/internal/controllers/http"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/cielo"
	mmysql "github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/mysql"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/rabbitmq"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/logging"
	mysqlrepo "github.com/henriquelv/rottava-agro-pet-sub001/internal/repository/mysql"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/services"
)

func main() {
	logger := logging.New()
	cfg := config.FromEnv()

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		logger.Error("db: connect", "error", err)
		os.Exit(1)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	repo := mysqlrepo.NewOrderRepository(db, logger)

	gateway, err := cielo.NewClient(cielo.Config{
		MerchantID:  cfg.CieloMerchantID,
		MerchantKey: cfg.CieloMerchantKey,
		Production:  cfg.Production,
	}, logger)
	if err != nil {
		logger.Error("cielo: init", "error", err)
		os.Exit(1)
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, "notificacoes.exchange", logger)
	if err != nil {
		logger.Error("rabbitmq: init", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	s := services.NewPaymentService(gateway, repo, publisher, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	s.SetRedisClient(redisClient)

	handler := controllers.NewHandler(s, redisClient, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting payment service", "port", cfg.Port, "production", cfg.Production)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
