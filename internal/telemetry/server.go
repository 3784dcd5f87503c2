// Package telemetry exposes the running simulation over HTTP: a small
// JSON API for state inspection and a Prometheus endpoint for scraping.
package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-orrery/internal/engine"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/version"
)

// Server serves the telemetry API for one engine.
type Server struct {
	eng *engine.Engine
	log *logging.Logger
	srv *http.Server
}

// NewServer creates a telemetry server bound to addr.
func NewServer(addr string, eng *engine.Engine, log *logging.Logger) *Server {
	s := &Server{eng: eng, log: log}

	router := mux.NewRouter()
	router.HandleFunc("/state", s.stateHandler).Methods("GET")
	router.HandleFunc("/bodies", s.bodiesHandler).Methods("GET")
	router.HandleFunc("/events", s.eventsHandler).Methods("GET")
	router.Handle("/metrics", s.metricsHandler()).Methods("GET")

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("telemetry listening on %s", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

type stateResponse struct {
	Version      string    `json:"version"`
	Date         time.Time `json:"date"`
	SpeedLabel   string    `json:"speed_label"`
	Paused       bool      `json:"paused"`
	CameraPhase  string    `json:"camera_phase"`
	Selected     string    `json:"selected,omitempty"`
	Frames       uint64    `json:"frames"`
	ImpactActive bool      `json:"impact_active"`
	ImpactDays   float64   `json:"impact_days_remaining,omitempty"`
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.eng.Snapshot()
	writeJSON(w, stateResponse{
		Version:      version.Version,
		Date:         snap.Sim.Date,
		SpeedLabel:   snap.SpeedLabel,
		Paused:       snap.Sim.Paused,
		CameraPhase:  snap.CameraPhase.String(),
		Selected:     snap.Selected,
		Frames:       snap.Frames,
		ImpactActive: snap.Impact.Active,
		ImpactDays:   snap.Impact.DaysToImpact,
	})
}

type bodyResponse struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	R    float64 `json:"heliocentric_au"`
}

func (s *Server) bodiesHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.eng.Snapshot()
	out := make([]bodyResponse, 0, len(snap.Bodies))
	for _, b := range snap.Bodies {
		out = append(out, bodyResponse{
			Name: b.Name,
			X:    b.Position.X,
			Y:    b.Position.Y,
			Z:    b.Position.Z,
			R:    b.Position.Norm(),
		})
	}
	writeJSON(w, out)
}

func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.eng.Snapshot().Events)
}

// metricsHandler refreshes the gauges from a snapshot on every scrape so
// the exported values are as fresh as the last frame.
func (s *Server) metricsHandler() http.Handler {
	prom := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		publish(s.eng.Snapshot())
		prom.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
