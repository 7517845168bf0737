package metrics

import "sync/atomic"

// Mock is a no-op Metrics implementation that counts calls, for tests.
type Mock struct {
	RankingRequests  atomic.Int64
	StoreErrors      atomic.Int64
	SheetFetches     atomic.Int64
	SlackNotifSent   atomic.Int64
	SlackNotifFailed atomic.Int64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncRankingRequests() { m.RankingRequests.Add(1) }

func (m *Mock) ObserveRankingDuration(_ float64) {}

func (m *Mock) IncStoreErrors() { m.StoreErrors.Add(1) }

func (m *Mock) IncSheetFetches() { m.SheetFetches.Add(1) }

func (m *Mock) IncSlackNotifSent() { m.SlackNotifSent.Add(1) }

func (m *Mock) IncSlackNotifFailed() { m.SlackNotifFailed.Add(1) }

func (m *Mock) SetStartupTime(_ float64) {}
