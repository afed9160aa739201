// Package server serves processed activity datasets over HTTP for the
// dashboard.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/lucasjlepore/activity-stats/cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls the HTTP server.
type Config struct {
	// MaxUploadBytes caps the size of an uploaded export.
	MaxUploadBytes int64
	// CacheTTL expires cached datasets; zero keeps them until cleared.
	CacheTTL time.Duration
	// Mapping is the default group mapping for uploads.
	Mapping activitystats.GroupMapping
}

// processed is what one parse of an upload produced. Identical uploads reuse
// it, warnings included.
type processed struct {
	Dataset  *activitystats.Dataset
	Warnings []string
}

// Server holds upload sessions and the processed-dataset cache.
type Server struct {
	cfg      Config
	sessions *SessionStore
	datasets *cache.Cache[processed]
	now      func() time.Time
}

// New builds a server from cfg.
func New(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	if cfg.Mapping.Revision() == "" {
		cfg.Mapping = activitystats.CanonicalMapping
	}
	return &Server{
		cfg:      cfg,
		sessions: NewSessionStore(),
		datasets: cache.New[processed](cfg.CacheTTL),
		now:      time.Now,
	}
}

// Router wires every route onto a gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = s.cfg.MaxUploadBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.POST("/uploads", s.Upload)
	api.POST("/cache/clear", s.ClearCache)

	sess := api.Group("/sessions/:id")
	sess.GET("", s.GetSession)
	sess.DELETE("", s.DeleteSession)
	sess.GET("/activities", s.GetActivities)
	sess.GET("/races", s.GetRaces)
	sess.GET("/best-times", s.GetBestTimes)
	sess.GET("/records", s.GetRecords)
	sess.GET("/trends", s.GetTrends)
	sess.GET("/composition", s.GetComposition)
	sess.GET("/summary", s.GetSummary)
	return r
}
