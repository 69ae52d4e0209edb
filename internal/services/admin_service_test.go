package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

func TestPeriodStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)

	start, ok := periodStart("today", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), start)

	start, ok = periodStart("week", now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, ok = periodStart("month", now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -30), start)

	// Anything else means "all time": no lower bound.
	_, ok = periodStart("", now)
	assert.False(t, ok)
	_, ok = periodStart("year", now)
	assert.False(t, ok)
}

func TestBuildCSV(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	rows := []dto.ExportRow{
		{
			ID:                 id,
			Type:               "Visitor",
			Name:               "Carl",
			PurposeDescription: "Delivery, fragile",
			Status:             "Approved",
			ResidentName:       "Alice",
			ResidentEmail:      "alice@x.com",
			SecurityGuardName:  "Bob",
			CreatedAt:          "2026-08-27 10:00:00",
		},
	}

	data, err := BuildCSV(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Resident Email")
	assert.Contains(t, lines[1], id.String())
	// Fields containing commas are quoted, not split.
	assert.Contains(t, lines[1], `"Delivery, fragile"`)
}

func TestBuildCSV_Empty(t *testing.T) {
	t.Parallel()

	data, err := BuildCSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1) // header only
}

func TestBulkErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "record not found", bulkErrorMessage(ErrRecordNotFound))
	assert.Equal(t, "status does not exist for this record type", bulkErrorMessage(workflow.ErrInvalidStatus))
	assert.Equal(t, "transition not allowed from the current status", bulkErrorMessage(workflow.ErrInvalidTransition))
	assert.Equal(t, "not permitted", bulkErrorMessage(workflow.ErrNotPermitted))
	assert.Equal(t, "internal error", bulkErrorMessage(assert.AnError))
}
