package dashboard

import (
	"austinhousing/server/internal/metadata"
	"austinhousing/server/internal/models"
	"austinhousing/server/internal/ranking"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// Sessions keeps the open sessions by id. The least recently used session
// is dropped once the limit is reached.
type Sessions struct {
	dash    *Dashboard
	entries *lru.Cache[string, *sessionEntry]
}

func newSessions(d *Dashboard, limit int) *Sessions {
	entries, _ := lru.New[string, *sessionEntry](limit)
	return &Sessions{dash: d, entries: entries}
}

// Start opens a session and runs its page load.
func (s *Sessions) Start(ctx context.Context) (string, InitResult) {
	session := s.dash.NewSession()
	result := session.Init(ctx)

	id := uuid.NewString()
	s.entries.Add(id, &sessionEntry{session: session})
	return id, result
}

// MetricChanged applies a metric selection to the session. The returned
// selection is the session's state after the event.
func (s *Sessions) MetricChanged(id string, metric models.Metric) (*ranking.BarChart, models.SelectionState, error) {
	var (
		chart     *ranking.BarChart
		selection models.SelectionState
	)
	err := s.with(id, func(session *Session) error {
		var err error
		chart, err = session.MetricChanged(metric)
		selection = session.Selection()
		return err
	})
	return chart, selection, err
}

// ZipcodeChanged applies a ZIP code selection to the session.
func (s *Sessions) ZipcodeChanged(id, zipcode string) (*metadata.Panel, models.SelectionState, error) {
	var (
		panel     *metadata.Panel
		selection models.SelectionState
	)
	err := s.with(id, func(session *Session) error {
		var err error
		panel, err = session.ZipcodeChanged(zipcode)
		selection = session.Selection()
		return err
	})
	return panel, selection, err
}

// Close drops a session.
func (s *Sessions) Close(id string) bool {
	return s.entries.Remove(id)
}

func (s *Sessions) Len() int {
	return s.entries.Len()
}

func (s *Sessions) with(id string, fn func(*Session) error) error {
	entry, ok := s.entries.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}
