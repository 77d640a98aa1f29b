package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miniblog/internal/handlers"
	"miniblog/internal/logger"
	"miniblog/internal/repository"
	"miniblog/internal/repository/db"
	"miniblog/internal/server"
	"miniblog/internal/service"

	"github.com/spf13/viper"
)

// Abandoned sessions are reaped hourly; live requests never wait on it.
const sessionSweepTick = time.Hour

func main() {
	// load config.yml, then init the logger with the configured level
	// (an unread config yields the default level)
	cfgErr := loadConfig()
	log := logger.Get(viper.GetString("log.level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	signingKey := viper.GetString("session.signing_key")
	if signingKey == "" {
		log.Fatalw("session.signing_key not set in config")
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, signingKey)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// reap expired sessions in the background
	go services.Sweeper.Run(ctx, sessionSweepTick)

	router := apiHandler.InitRoutes()
	router.LoadHTMLGlob(templatesGlob())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), router, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "blog.db")
		dbPath = "blog.db"
	}
	return db.InitDB(dbPath)
}

func templatesGlob() string {
	if glob := viper.GetString("templates"); glob != "" {
		return glob
	}
	return "templates/*.html"
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
