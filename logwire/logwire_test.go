package logwire

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWritesOneJSONLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time { return time.Unix(0, 0).UTC() }

	l.Infof("params", "reloaded %s", "ok")
	l.Errorf("params", "boom")

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2)

	var first Entry
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, LevelInfo, first.Level)
	assert.Equal(t, "params", first.Component)
	assert.Equal(t, "reloaded ok", first.Message)

	var second Entry
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, LevelError, second.Level)
}

func TestEmitOnNilLoggerIsNoop(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Infof("x", "msg") })
}
