package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	_ "github.com/apfdpotter-ops/dryer-dashboard/docs" // swagger spec registration
	"github.com/apfdpotter-ops/dryer-dashboard/internal/handlers"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/logger"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/repository"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/repository/db"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/sensors"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/server"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/service"
)

func main() {
	cfgErr := loadConfig()
	log := logger.Get(viper.GetString("log_level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	sqlite, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlite.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlite)
	src := sensors.New(log)
	services := service.NewService(repos, src, log, service.Config{
		LogDir:         viper.GetString("logging.dir"),
		SampleInterval: time.Duration(viper.GetInt("logging.interval_seconds")) * time.Second,
		SigningKey:     viper.GetString("auth.signing_key"),
	})
	apiHandler := handlers.NewHandler(services, log)
	apiHandler.SetStaticDir(viper.GetString("static.dir"))

	// optionally begin a logging session right away
	if viper.GetBool("logging.autostart") {
		if err := services.Sampler.Start(context.Background()); err != nil {
			log.Errorw("autostart sampling failed", "err", err)
		}
	}

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(services, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("log_level", logger.InfoLevel)
	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "dryer.db")
	viper.SetDefault("logging.dir", "logs")
	viper.SetDefault("logging.interval_seconds", 900) // 15 min between samples
	viper.SetDefault("logging.autostart", false)
	viper.SetDefault("static.dir", "static")
	viper.SetDefault("auth.signing_key", "change-me-in-config")

	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "dryer.db")
		dbPath = "dryer.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, stops the sampling loop
// and performs graceful HTTP shutdown.
func waitForShutdown(services *service.Service, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := services.Sampler.Stop(stopCtx); err != nil {
		log.Errorw("failed to stop sampler", "err", err)
	}

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
