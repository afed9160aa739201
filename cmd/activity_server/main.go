package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"github.com/lucasjlepore/activity-stats/pipeline"
	"github.com/lucasjlepore/activity-stats/server"
)

// Config is read from ACTIVITY_* environment variables.
type Config struct {
	HTTPAddress    string        `envconfig:"ACTIVITY_HTTP_ADDRESS" default:":8080"`
	CacheTTL       time.Duration `envconfig:"ACTIVITY_CACHE_TTL" default:"0s"`
	MaxUploadBytes int64         `envconfig:"ACTIVITY_MAX_UPLOAD_BYTES" default:"33554432"`
	GroupMapping   string        `envconfig:"ACTIVITY_GROUP_MAPPING" default:"canonical"`
	GinMode        string        `envconfig:"GIN_MODE" default:"release"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("main: load config: %v", err)
	}
	mapping, err := pipeline.ResolveMapping(cfg.GroupMapping)
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	srv := server.New(server.Config{
		MaxUploadBytes: cfg.MaxUploadBytes,
		CacheTTL:       cfg.CacheTTL,
		Mapping:        mapping,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("main: listening on %s (mapping %s)", cfg.HTTPAddress, mapping.Revision())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main: serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Printf("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("main: shutdown: %v", err)
	}
}
