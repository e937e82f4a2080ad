package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseOnNilWriterIsNoop(t *testing.T) {
	var w *TradeWriter
	assert.NotPanics(t, func() { w.Close() })
}

func TestNewTradeWriterWrapsPool(t *testing.T) {
	w := NewTradeWriter(nil)
	assert.NotNil(t, w)
}
