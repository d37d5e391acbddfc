package complaint

import (
	"testing"
	"time"

	"nagarrakshak/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildTimeline_FullyLogged(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updates := []models.StatusUpdate{
		{Status: models.StatusRegistered, CreatedAt: base},
		{Status: models.StatusAssigned, AssignedTo: "R. Sharma", AssignedContact: "9876543210", CreatedAt: base.Add(time.Hour)},
		{Status: models.StatusInProgress, Note: "Crew on site", CreatedAt: base.Add(2 * time.Hour)},
	}

	steps := BuildTimeline(models.StatusInProgress, updates)

	assert.Len(t, steps, 4)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[1].Completed)
	assert.True(t, steps[2].Completed)
	assert.False(t, steps[3].Completed)

	assert.Equal(t, "R. Sharma", steps[1].AssignedTo)
	assert.Equal(t, "9876543210", steps[1].AssignedContact)
	assert.Equal(t, "Crew on site", steps[2].Note)
	assert.Empty(t, steps[3].Timestamp)
}

func TestBuildTimeline_UnloggedCompletedStageShowsProcessing(t *testing.T) {
	// Resolved complaint whose log only has the initial entry: the middle
	// stages were passed through without being recorded.
	updates := []models.StatusUpdate{
		{Status: models.StatusRegistered, CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	steps := BuildTimeline(models.StatusResolved, updates)

	for _, step := range steps {
		assert.True(t, step.Completed)
	}
	assert.NotEqual(t, "Processing...", steps[0].Timestamp)
	assert.Equal(t, "Processing...", steps[1].Timestamp)
	assert.Equal(t, "Processing...", steps[2].Timestamp)
	assert.Equal(t, "Processing...", steps[3].Timestamp)
}

func TestBuildTimeline_PendingCountsAsRegistered(t *testing.T) {
	updates := []models.StatusUpdate{
		{Status: models.StatusPending, CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	steps := BuildTimeline(models.StatusPending, updates)

	assert.True(t, steps[0].Completed)
	assert.NotEmpty(t, steps[0].Timestamp)
	assert.NotEqual(t, "Processing...", steps[0].Timestamp)
	for _, step := range steps[1:] {
		assert.False(t, step.Completed)
		assert.Empty(t, step.Timestamp)
	}
}

func TestBuildTimeline_LatestEntryPerStageWins(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updates := []models.StatusUpdate{
		{Status: models.StatusInProgress, Note: "first visit", CreatedAt: base},
		{Status: models.StatusInProgress, Note: "second visit", CreatedAt: base.Add(time.Hour)},
	}

	steps := BuildTimeline(models.StatusInProgress, updates)

	assert.Equal(t, "second visit", steps[2].Note)
}

func TestBuildTimeline_NoUpdates(t *testing.T) {
	steps := BuildTimeline(models.StatusRegistered, nil)

	assert.Len(t, steps, 4)
	assert.True(t, steps[0].Completed)
	assert.Equal(t, "Processing...", steps[0].Timestamp)
	assert.False(t, steps[1].Completed)
}
