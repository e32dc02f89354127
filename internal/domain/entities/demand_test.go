package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ykri.backend/internal/domain/entities"
)

func TestNormalizeDemandStatus(t *testing.T) {
	assert.Equal(t, entities.DemandStatusWaiting, entities.NormalizeDemandStatus("waiting"))
	assert.Equal(t, entities.DemandStatusNegotiating, entities.NormalizeDemandStatus("negotiating"))
	assert.Equal(t, entities.DemandStatusMatched, entities.NormalizeDemandStatus("matched"))

	// legacy client vocabulary
	assert.Equal(t, entities.DemandStatusWaiting, entities.NormalizeDemandStatus("open"))
	assert.Equal(t, entities.DemandStatusWaiting, entities.NormalizeDemandStatus("pending"))
	assert.Equal(t, entities.DemandStatusWaiting, entities.NormalizeDemandStatus(""))
}

func TestTimeSlot_Overlaps(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	slot := entities.TimeSlot{Start: base, End: base.Add(48 * time.Hour)}

	assert.True(t, slot.Overlaps(entities.TimeSlot{Start: base.Add(24 * time.Hour), End: base.Add(72 * time.Hour)}))
	assert.True(t, slot.Overlaps(entities.TimeSlot{Start: base.Add(-24 * time.Hour), End: base.Add(time.Hour)}))
	assert.True(t, slot.Overlaps(entities.TimeSlot{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}), "contained slot overlaps")

	// edge-touching slots do not overlap
	assert.False(t, slot.Overlaps(entities.TimeSlot{Start: base.Add(48 * time.Hour), End: base.Add(96 * time.Hour)}))
	assert.False(t, slot.Overlaps(entities.TimeSlot{Start: base.Add(-48 * time.Hour), End: base}))

	assert.False(t, slot.Overlaps(entities.TimeSlot{Start: base.Add(96 * time.Hour), End: base.Add(120 * time.Hour)}))
}
