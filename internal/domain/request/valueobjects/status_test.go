package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[Status][]Status{
		StatusNew:                 {StatusManagerReview, StatusCancelled},
		StatusManagerReview:       {StatusClarification, StatusSentToContractors, StatusCancelled},
		StatusClarification:       {StatusClarification, StatusManagerReview, StatusSentToContractors, StatusCancelled},
		StatusSentToContractors:   {StatusContractorResponses, StatusAssigned, StatusCancelled},
		StatusContractorResponses: {StatusContractorResponses, StatusAssigned, StatusCancelled},
		StatusAssigned:            {StatusInProgress, StatusCancelled},
		StatusInProgress:          {StatusCompleted, StatusCancelled},
		StatusCompleted:           nil,
		StatusCancelled:           nil,
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_TerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range AllStatuses() {
		if s.IsTerminal() {
			assert.Empty(t, s.AllowedTransitions(), s.String())
		} else {
			assert.True(t, s.CanTransitionTo(StatusCancelled), "%s must be cancellable", s)
		}
	}
}

func TestNewStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		parsed, err := NewStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := NewStatus("NEW")
	assert.Error(t, err)
	_, err = NewStatus("closed")
	assert.Error(t, err)
}

func TestUrgencyAndPriority(t *testing.T) {
	_, err := NewUrgency("critical")
	assert.NoError(t, err)
	_, err = NewUrgency("urgent")
	assert.Error(t, err)

	_, err = NewPriority("urgent")
	assert.NoError(t, err)
	_, err = NewPriority("critical")
	assert.Error(t, err)
}

func TestNewGeoPoint(t *testing.T) {
	p, err := NewGeoPoint(67.6, 33.4)
	require.NoError(t, err)
	assert.Equal(t, 67.6, p.Latitude)

	_, err = NewGeoPoint(91, 0)
	assert.Error(t, err)
	_, err = NewGeoPoint(0, -181)
	assert.Error(t, err)
}
