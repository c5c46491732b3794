// Package daemon provides the long-running projection service: it watches a
// plan, re-projects it when it changes and publishes the results over HTTP.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/projection"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Source       Source
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Logger       *logrus.Logger
}

// Snapshot is a compact projection state for status/event payloads.
type Snapshot struct {
	At               time.Time `json:"at"`
	Plan             string    `json:"plan"`
	StartYear        int       `json:"start_year"`
	EndYear          int       `json:"end_year"`
	Elements         int       `json:"elements"`
	FinalNetWorth    float64   `json:"final_net_worth"`
	PeakNetWorth     float64   `json:"peak_net_worth"`
	PeakNetWorthYear int       `json:"peak_net_worth_year"`
	NetIncome        float64   `json:"net_income"`
	Expenses         float64   `json:"expenses"`
	DebtFreeYear     int       `json:"debt_free_year,omitempty"`
}

// Delta captures snapshot deltas between projections.
type Delta struct {
	FinalNetWorth float64 `json:"final_net_worth"`
	NetIncome     float64 `json:"net_income"`
	Expenses      float64 `json:"expenses"`
}

func (d Delta) isZero() bool {
	return d.FinalNetWorth == 0 &&
		d.NetIncome == 0 &&
		d.Expenses == 0
}

// Event is emitted whenever the projection changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	LastChangeAt    time.Time `json:"last_change_at"`
	PollIntervalSec float64   `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Source          string    `json:"source"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *logrus.Logger

	mu           sync.RWMutex
	startedAt    time.Time
	lastPollAt   time.Time
	lastChangeAt time.Time
	pollCount    int64
	lastError    string
	version      string
	hasSnapshot  bool
	snapshot     Snapshot
	years        []model.YearlySnapshot
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 100*time.Millisecond {
		cfg.Interval = 2 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Service{
		cfg:       cfg,
		log:       logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/projection", s.handleProjection).Methods(http.MethodGet)
	r.HandleFunc("/v1/projection/{year:[0-9]+}", s.handleProjectionYear).Methods(http.MethodGet)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// Run serves the HTTP API and polls the plan source until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// Seed initial snapshot so status is useful immediately.
		s.pollOnce()

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				s.pollOnce()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	s.log.WithFields(logrus.Fields{
		"addr":     s.cfg.Addr,
		"source":   s.cfg.Source.Describe(),
		"interval": s.cfg.Interval.String(),
	}).Info("daemon started")

	err := g.Wait()
	s.log.Info("daemon stopped")
	return err
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = time.Now()
	s.pollCount++
	s.mu.Unlock()
	s.log.WithError(err).WithField("source", s.cfg.Source.Describe()).Warn("poll failed")
}

func (s *Service) pollOnce() {
	version, err := s.cfg.Source.Version()
	if err != nil {
		s.recordError(err)
		return
	}

	s.mu.RLock()
	unchanged := s.hasSnapshot && version == s.version
	s.mu.RUnlock()
	if unchanged {
		s.mu.Lock()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.lastError = ""
		s.mu.Unlock()
		return
	}

	plan, err := s.cfg.Source.Load()
	if err != nil {
		s.recordError(err)
		return
	}

	now := time.Now()
	years := projection.Project(plan)
	snap := snapshotFromSummary(plan, projection.Summarize(years), now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.years = years
	s.version = version
	s.lastPollAt = now
	s.lastChangeAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "projection_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"plan":            snap.Plan,
		"years":           len(years),
		"final_net_worth": snap.FinalNetWorth,
	}).Info("plan projected")

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotFromSummary(plan model.Plan, sum model.Summary, at time.Time) Snapshot {
	return Snapshot{
		At:               at,
		Plan:             plan.Name,
		StartYear:        plan.StartYear,
		EndYear:          plan.EndYear,
		Elements:         plan.Elements.Len(),
		FinalNetWorth:    sum.FinalNetWorth,
		PeakNetWorth:     sum.PeakNetWorth,
		PeakNetWorthYear: sum.PeakNetWorthYear,
		NetIncome:        sum.NetIncome,
		Expenses:         sum.Expenses,
		DebtFreeYear:     sum.DebtFreeYear,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		FinalNetWorth: curr.FinalNetWorth - prev.FinalNetWorth,
		NetIncome:     curr.NetIncome - prev.NetIncome,
		Expenses:      curr.Expenses - prev.Expenses,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		LastChangeAt:    s.lastChangeAt,
		PollIntervalSec: s.cfg.Interval.Seconds(),
		PollCount:       s.pollCount,
		Source:          s.cfg.Source.Describe(),
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleProjection(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ready := s.hasSnapshot
	years := s.years
	s.mu.RUnlock()

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no projection yet"})
		return
	}
	writeJSON(w, http.StatusOK, years)
}

func (s *Service) handleProjectionYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
		return
	}

	s.mu.RLock()
	snap, ok := projection.Find(s.years, year)
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("year %d is outside the projection", year)})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
