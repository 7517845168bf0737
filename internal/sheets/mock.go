package sheets

import (
	"context"
	"sync"
)

// MockValuesGetter serves canned ranges for tests.
type MockValuesGetter struct {
	mu sync.Mutex

	// Ranges maps a readRange to the rows it returns.
	Ranges map[string][][]string
	// Err, when set, is returned for every call.
	Err error

	Calls []string
}

var _ ValuesGetter = (*MockValuesGetter)(nil)

// NewMock creates a mock getter with the given canned ranges.
func NewMock(ranges map[string][][]string) *MockValuesGetter {
	return &MockValuesGetter{Ranges: ranges}
}

func (m *MockValuesGetter) Values(ctx context.Context, readRange string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, readRange)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Ranges[readRange], nil
}
