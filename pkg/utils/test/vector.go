package testutils

import (
	"context"
	"errors"

	"github.com/papercomputeco/shelf/pkg/vector"
)

// MockVectorDriver is a test vector driver that records writes and can be
// made to fail.
type MockVectorDriver struct {
	Documents map[string]vector.Document

	// Added holds every batch passed to Add.
	Added [][]vector.Document

	FailGet bool
	FailAdd bool
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		Documents: make(map[string]vector.Document),
	}
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	if m.FailAdd {
		return errors.New("mock add failure")
	}
	m.Added = append(m.Added, docs)
	for _, d := range docs {
		m.Documents[d.ID] = d
	}
	return nil
}

func (m *MockVectorDriver) Get(_ context.Context, ids []string) ([]vector.Document, error) {
	if m.FailGet {
		return nil, vector.ErrConnection
	}
	out := make([]vector.Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := m.Documents[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}
