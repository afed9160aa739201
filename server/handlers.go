package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/lucasjlepore/activity-stats/aggregate"
	"github.com/lucasjlepore/activity-stats/cache"
	"github.com/lucasjlepore/activity-stats/observability"
	"github.com/lucasjlepore/activity-stats/pipeline"
)

// UploadResponse describes a newly created session.
type UploadResponse struct {
	Session        *Session `json:"session"`
	Activities     int      `json:"activities"`
	Dropped        int      `json:"dropped"`
	SkippedSummary string   `json:"skipped_summary,omitempty"`
}

// Upload handles POST /api/v1/uploads (multipart field "file", optional
// "mapping" query parameter).
func (s *Server) Upload(c *gin.Context) {
	mapping := s.cfg.Mapping
	if name := c.Query("mapping"); name != "" {
		m, err := pipeline.ResolveMapping(name)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		mapping = m
	}

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "multipart field \"file\" is required")
		return
	}
	if header.Size > s.cfg.MaxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes))
		return
	}
	f, err := header.Open()
	if err != nil {
		badRequest(c, "cannot open upload")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		badRequest(c, "cannot read upload")
		return
	}

	kind := pipeline.DetectKind(header.Filename, data)
	key := cache.Key(data) + "/" + mapping.Revision()
	entry, hit := s.datasets.Get(key)
	observability.RecordCacheLookup(hit)
	if !hit {
		start := time.Now()
		entry.Dataset, entry.Warnings, err = pipeline.Load(header.Filename, data, mapping)
		observability.ObserveProcessing(time.Since(start))
		if err != nil {
			observability.RecordUpload(kind, false)
			log.Printf("server: upload %q rejected: %v", header.Filename, err)
			status := http.StatusUnprocessableEntity
			if errors.Is(err, activitystats.ErrMissingRequiredField) || errors.Is(err, activitystats.ErrNoUsableTime) {
				status = http.StatusBadRequest
			}
			fail(c, status, err.Error())
			return
		}
		s.datasets.Put(key, entry)
		observability.RecordRows(len(entry.Dataset.Activities), len(entry.Dataset.Dropped))
	}
	ds := entry.Dataset
	observability.RecordUpload(kind, true)

	sess := &Session{
		ID:        uuid.NewString(),
		FileName:  header.Filename,
		SourceKey: cache.Key(data),
		CreatedAt: s.now().UTC(),
		Warnings:  entry.Warnings,
		Cached:    hit,
		Dataset:   ds,
	}
	observability.SetSessions(s.sessions.Put(sess))
	log.Printf("server: session %s created from %q (%d activities, %d dropped, cached=%t)",
		sess.ID, header.Filename, len(ds.Activities), len(ds.Dropped), hit)

	success(c, http.StatusCreated, UploadResponse{
		Session:        sess,
		Activities:     len(ds.Activities),
		Dropped:        len(ds.Dropped),
		SkippedSummary: ds.SkippedSummary(),
	})
}

// ClearCache handles POST /api/v1/cache/clear.
func (s *Server) ClearCache(c *gin.Context) {
	n := s.datasets.Clear()
	log.Printf("server: cleared %d cached datasets", n)
	success(c, http.StatusOK, gin.H{"cleared": n})
}

// GetSession handles GET /api/v1/sessions/:id.
func (s *Server) GetSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, sess)
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (s *Server) DeleteSession(c *gin.Context) {
	existed, remaining := s.sessions.Delete(c.Param("id"))
	if !existed {
		notFound(c, "session not found")
		return
	}
	observability.SetSessions(remaining)
	c.Status(http.StatusNoContent)
}

// GetActivities handles GET /api/v1/sessions/:id/activities with optional
// repeated "group" and "days" filters.
func (s *Server) GetActivities(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	acts, ok := s.filtered(c, sess.Dataset.Activities)
	if !ok {
		return
	}
	success(c, http.StatusOK, acts)
}

// GetRaces handles GET /api/v1/sessions/:id/races. The optional
// "competition" parameter selects rows by the export's Competition flag
// instead of the name heuristic.
func (s *Server) GetRaces(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	raw := c.Query("competition")
	if raw == "" {
		success(c, http.StatusOK, sess.Dataset.Races)
		return
	}
	want, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "competition must be true or false")
		return
	}
	competitions, training := activitystats.SplitCompetitions(sess.Dataset.Activities)
	if want {
		success(c, http.StatusOK, competitions)
		return
	}
	success(c, http.StatusOK, training)
}

// GetBestTimes handles GET /api/v1/sessions/:id/best-times.
func (s *Server) GetBestTimes(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, activitystats.OrderedBestTimes(sess.Dataset.BestTimes))
}

// GetRecords handles GET /api/v1/sessions/:id/records.
func (s *Server) GetRecords(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	acts, ok := s.filtered(c, sess.Dataset.Activities)
	if !ok {
		return
	}
	success(c, http.StatusOK, activitystats.ComputePersonalRecords(acts))
}

// GetTrends handles GET /api/v1/sessions/:id/trends?interval=.
func (s *Server) GetTrends(c *gin.Context) {
	interval, acts, ok := s.intervalRequest(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, aggregate.Trends(acts, interval))
}

// GetComposition handles GET /api/v1/sessions/:id/composition?interval=.
func (s *Server) GetComposition(c *gin.Context) {
	interval, acts, ok := s.intervalRequest(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, aggregate.GroupComposition(acts, interval))
}

// GetSummary handles GET /api/v1/sessions/:id/summary.
func (s *Server) GetSummary(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	acts, ok := s.filtered(c, sess.Dataset.Activities)
	if !ok {
		return
	}
	success(c, http.StatusOK, gin.H{
		"metrics":         aggregate.ComputeFunMetrics(acts),
		"skipped_summary": sess.Dataset.SkippedSummary(),
		"notes":           activitystats.BuildSummaryNotes(sess.Dataset),
	})
}

func (s *Server) session(c *gin.Context) (*Session, bool) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		notFound(c, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) filtered(c *gin.Context, acts []activitystats.Activity) ([]activitystats.Activity, bool) {
	var groups []activitystats.Group
	for _, g := range c.QueryArray("group") {
		groups = append(groups, activitystats.Group(g))
	}
	acts = aggregate.FilterGroups(acts, groups...)
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			badRequest(c, "days must be a non-negative integer")
			return nil, false
		}
		acts = aggregate.FilterSince(acts, s.now(), days)
	}
	return acts, true
}

func (s *Server) intervalRequest(c *gin.Context) (aggregate.Interval, []activitystats.Activity, bool) {
	sess, ok := s.session(c)
	if !ok {
		return 0, nil, false
	}
	interval, err := aggregate.ParseInterval(c.DefaultQuery("interval", "quarterly"))
	if err != nil {
		badRequest(c, err.Error())
		return 0, nil, false
	}
	acts, ok := s.filtered(c, sess.Dataset.Activities)
	if !ok {
		return 0, nil, false
	}
	return interval, acts, true
}
