package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"exercise-tracker/db"
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/exercise"
	"exercise-tracker/internal/logging"
	"exercise-tracker/internal/user"
	"exercise-tracker/internal/web"
	"exercise-tracker/middleware"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	logger.Infof("Starting exercise tracker - Process ID: %d", os.Getpid())
	logger.Infof("Runtime: %s/%s, Go version: %s", runtime.GOOS, runtime.GOARCH, runtime.Version())

	ctx := context.Background()
	repoFactory, closeStore, err := connectStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to %s: %v", cfg.DatabaseType, err)
	}
	defer closeStore()

	userRepo := repoFactory.NewUserRepository()

	// Initialize services with repositories
	userService := user.NewUserService(userRepo)
	exerciseService := exercise.NewExerciseService(userRepo)

	webHandler := web.NewWebHandler(
		user.NewUserHandlers(userService, logger),
		exercise.NewExerciseHandlers(exerciseService, logger),
		userRepo,
		cfg,
		logger,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           webHandler.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Create a done channel to coordinate graceful shutdown
	done := make(chan struct{})
	if limiter := webHandler.RateLimiter(); limiter != nil {
		go runLimiterCleanup(limiter, logger, done)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Your app is listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	waitForShutdown(server, logger, serverErr, done)
}

// connectStore opens the configured store and returns a factory for its
// repositories together with a function releasing it.
func connectStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*db.RepositoryFactory, func(), error) {
	switch cfg.DatabaseType {
	case config.SQLite:
		logger.Infof("Using SQLite database at %s", cfg.SQLitePath)
		sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitializeSchema(sqliteDB); err != nil {
			sqliteDB.Close()
			return nil, nil, err
		}

		// Create database manager for serialized writes
		dbManager := db.NewDBManager()
		closeFn := func() {
			dbManager.Stop()
			closeSQLite(sqliteDB, logger)
		}
		return db.NewRepositoryFactory(sqliteDB, nil, cfg.DatabaseName, dbManager), closeFn, nil

	default:
		logger.Info("Using MongoDB database")
		client, err := db.ConnectToMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureUserIndexes(ctx, client, cfg.DatabaseName); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		logger.Info("Connected to MongoDB")
		closeFn := func() { disconnectMongo(client, logger) }
		return db.NewRepositoryFactory(nil, client, cfg.DatabaseName, nil), closeFn, nil
	}
}

func closeSQLite(sqliteDB *sql.DB, logger *logrus.Logger) {
	if err := sqliteDB.Close(); err != nil {
		logger.WithError(err).Error("Failed to close SQLite database")
	}
}

func disconnectMongo(client *mongo.Client, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.WithError(err).Error("Failed to disconnect from MongoDB")
	}
}

func runLimiterCleanup(limiter *middleware.RateLimiter, logger *logrus.Logger, done <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Rate limiter cleanup panic recovered: %v", r)
			logger.Errorf("Rate limiter cleanup stack trace: %s", debug.Stack())
		}
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			limiter.Cleanup(10 * time.Minute)
		}
	}
}

func waitForShutdown(server *http.Server, logger *logrus.Logger, serverErr <-chan error, done chan struct{}) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Infof("Received shutdown signal: %v", sig)
	case err, ok := <-serverErr:
		if ok {
			logger.WithError(err).Error("Server ListenAndServe error")
		}
	}

	// Signal background services to stop
	close(done)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server Shutdown error")
		return
	}
	logger.Info("Server stopped")
}
