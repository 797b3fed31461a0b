package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"disasterwatch/internal/accumulator"
	"disasterwatch/internal/domain"
)

func events(ids ...string) []domain.Event {
	out := make([]domain.Event, len(ids))
	for i, id := range ids {
		out[i] = domain.Event{ID: id, Category: domain.DisasterCategory}
	}
	return out
}

func TestApplySnapshot(t *testing.T) {
	s := NewAppState()

	s.ApplySnapshot(accumulator.State{
		Query:        "Mumbai",
		Collected:    events("a", "b", "c"),
		Continuation: "next",
		Generation:   1,
	})
	assert.Equal(t, "Mumbai", s.Query)
	assert.Len(t, s.Events, 3)
	assert.True(t, s.HasMore)
	assert.Empty(t, s.ErrorMessage)

	s.SelectedIndex = 2
	s.ApplySnapshot(accumulator.State{
		Query:      "Mumbai",
		Collected:  events("a", "b", "c", "d"),
		Err:        errors.New("boom"),
		Generation: 1,
	})
	assert.Equal(t, 2, s.SelectedIndex, "same search keeps selection")
	assert.Equal(t, "boom", s.ErrorMessage)
	assert.False(t, s.HasMore)

	s.ApplySnapshot(accumulator.State{Query: "Pune", Collected: events(), Loading: true, Generation: 2})
	assert.Equal(t, 0, s.SelectedIndex, "new search resets selection")
	assert.True(t, s.Loading)
}

func TestApplySnapshotClampsSelection(t *testing.T) {
	s := NewAppState()
	s.ApplySnapshot(accumulator.State{Collected: events("a", "b", "c"), Generation: 1})
	s.SelectedIndex = 2

	s.ApplySnapshot(accumulator.State{Collected: events("a"), Generation: 1})
	assert.Equal(t, 0, s.SelectedIndex)
}

func TestShowLoadMore(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		hasMore bool
		want    bool
	}{
		{"full page with more", 10, true, true},
		{"more than a page", 14, true, true},
		{"short page with more", 9, true, false},
		{"full page without more", 10, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAppState()
			s.Events = make([]domain.Event, tt.count)
			s.HasMore = tt.hasMore
			assert.Equal(t, tt.want, s.ShowLoadMore(10))
		})
	}
}

func TestCanAdvance(t *testing.T) {
	s := NewAppState()
	s.HasMore = true
	s.Events = make([]domain.Event, 3)
	assert.False(t, s.CanAdvance(10))

	s.ErrorMessage = "rate limited"
	assert.True(t, s.CanAdvance(10), "retry after failure")

	s.Loading = true
	assert.False(t, s.CanAdvance(10))
}
