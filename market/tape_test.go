package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRingEviction(t *testing.T) {
	h := NewHistory(3)
	h.Append(HistoryEntry{TimestampMs: 1})
	h.Append(HistoryEntry{TimestampMs: 2})
	h.Append(HistoryEntry{TimestampMs: 3})
	h.Append(HistoryEntry{TimestampMs: 4})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, int64(2), h.At(0).TimestampMs)
	assert.Equal(t, int64(4), h.At(2).TimestampMs)
}

func TestHistoryNearest(t *testing.T) {
	h := NewHistory(10)
	h.Append(HistoryEntry{TimestampMs: 1000, UpPrice: 0.5})
	h.Append(HistoryEntry{TimestampMs: 2000, UpPrice: 0.6})
	h.Append(HistoryEntry{TimestampMs: 5000, UpPrice: 0.7})

	nearest, ok := h.Nearest(2100)
	assert.True(t, ok)
	assert.Equal(t, int64(2000), nearest.TimestampMs)
}

func TestHistoryNearestEmpty(t *testing.T) {
	h := NewHistory(10)
	_, ok := h.Nearest(0)
	assert.False(t, ok)
}
