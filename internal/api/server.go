// Package api exposes the recommendation engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mlebrun/sailcast/internal/activity"
	"github.com/mlebrun/sailcast/internal/catalog"
	"github.com/mlebrun/sailcast/internal/planner"
	"github.com/mlebrun/sailcast/internal/tide"
)

// Planner is the subset of the planning service the API depends on
type Planner interface {
	CurrentSnapshot(ctx context.Context) (*planner.Snapshot, error)
	Now(ctx context.Context, profileID string) (*planner.NowRecommendations, error)
	Week(ctx context.Context, profileID string) (*planner.WeekPlanning, error)
	Full(ctx context.Context, profileID string) (*planner.FullPlanning, error)
}

// Server holds the API's collaborators and the refreshed snapshot
type Server struct {
	planner Planner
	catalog *catalog.Cache
	tides   planner.TideSource
	log     *log.Logger

	snapshot *snapshotCache
}

// NewServer creates an API server
func NewServer(p Planner, cache *catalog.Cache, tides planner.TideSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		planner:  p,
		catalog:  cache,
		tides:    tides,
		log:      logger,
		snapshot: &snapshotCache{},
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/conditions", s.getConditions)
		v1.GET("/tides/today", s.getTidesToday)
		v1.GET("/profiles", s.getProfiles)
		v1.GET("/recommendations/:profile", s.getRecommendations)
		v1.GET("/planning/:profile", s.getPlanning)
		v1.GET("/full/:profile", s.getFull)
		v1.GET("/gear/:profile", s.getGear)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.log.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// getConditions serves the latest snapshot, refreshing it on demand when
// the background refresher has not populated one yet.
func (s *Server) getConditions(c *gin.Context) {
	if snapshot := s.snapshot.get(); snapshot != nil {
		Success(c, snapshot)
		return
	}

	snapshot, err := s.planner.CurrentSnapshot(c.Request.Context())
	if err != nil {
		s.log.Error("snapshot failed", "err", err)
		Unavailable(c, "current conditions unavailable")
		return
	}
	s.snapshot.set(snapshot)
	Success(c, snapshot)
}

func (s *Server) getTidesToday(c *gin.Context) {
	now := time.Now()
	events, err := s.tides.EventsForDay(now)
	if err != nil {
		NotFound(c, "no tide table for today")
		return
	}

	payload := gin.H{"date": now.Format("2006-01-02"), "events": events}
	if reading, err := tide.EstimateAt(now, events); err == nil {
		payload["now"] = reading
	}
	Success(c, payload)
}

func (s *Server) getProfiles(c *gin.Context) {
	cat, err := s.catalog.Load(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to load catalog")
		return
	}
	Success(c, cat.Profiles)
}

func (s *Server) getRecommendations(c *gin.Context) {
	result, err := s.planner.Now(c.Request.Context(), c.Param("profile"))
	if err != nil {
		s.profileError(c, err)
		return
	}
	Success(c, result)
}

func (s *Server) getPlanning(c *gin.Context) {
	result, err := s.planner.Week(c.Request.Context(), c.Param("profile"))
	if err != nil {
		s.profileError(c, err)
		return
	}
	Success(c, result)
}

func (s *Server) getFull(c *gin.Context) {
	result, err := s.planner.Full(c.Request.Context(), c.Param("profile"))
	if err != nil {
		s.profileError(c, err)
		return
	}
	Success(c, result)
}

// getGear recommends equipment for a profile at a given wind speed. The
// wind defaults to the cached snapshot's observation when no query
// parameter is provided.
func (s *Server) getGear(c *gin.Context) {
	cat, err := s.catalog.Load(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to load catalog")
		return
	}
	profile, err := catalog.ProfileByID(cat, c.Param("profile"))
	if err != nil {
		s.profileError(c, err)
		return
	}

	windKnots, ok := s.windFromRequest(c)
	if !ok {
		BadRequest(c, "wind query parameter required when no observation is cached")
		return
	}

	gear := activity.RecommendedGear(profile, cat.Equipment, windKnots)
	Success(c, gin.H{"windKnots": windKnots, "gear": gear})
}

func (s *Server) windFromRequest(c *gin.Context) (float64, bool) {
	if raw := c.Query("wind"); raw != "" {
		wind, err := strconv.ParseFloat(raw, 64)
		if err != nil || wind < 0 {
			return 0, false
		}
		return wind, true
	}
	if snapshot := s.snapshot.get(); snapshot != nil && snapshot.Weather != nil && snapshot.Weather.WindSpeedKnots != nil {
		return *snapshot.Weather.WindSpeedKnots, true
	}
	return 0, false
}

func (s *Server) profileError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		NotFound(c, err.Error())
		return
	}
	s.log.Error("request failed", "err", err)
	InternalError(c, "internal error")
}
