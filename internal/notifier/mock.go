package notifier

import (
	"sync"

	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []struct {
		Match   *poker.Match
		Entries []ranking.ComparedEntry
	}
	SendRankingCalls [][]ranking.ComparedEntry

	// Spies for format functions
	FormatRankingResponseFunc func(entries []ranking.ComparedEntry) (any, error)

	LastRankingResponse any
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendRankingCalls = nil
	m.LastRankingResponse = nil
}

func (m *Mock) SendResultNotification(match *poker.Match, entries []ranking.ComparedEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match   *poker.Match
		Entries []ranking.ComparedEntry
	}{match, entries})
	return nil
}

func (m *Mock) SendRanking(entries []ranking.ComparedEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingCalls = append(m.SendRankingCalls, entries)
	return nil
}

func (m *Mock) FormatRankingResponse(entries []ranking.ComparedEntry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRankingResponseFunc != nil {
		resp, err := m.FormatRankingResponseFunc(entries)
		m.LastRankingResponse = resp
		return resp, err
	}
	return "formatted_ranking", nil
}
