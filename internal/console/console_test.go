package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Info("shown %d", 2)
	assert.Equal(t, "2024/01/02 03:04:05 INFO  shown 2\n", buf.String())

	buf.Reset()
	l.DebugLevel = LevelDebug
	l.Debug("now %s", "visible")
	assert.Contains(t, buf.String(), "DEBUG now visible")

	buf.Reset()
	l.DebugLevel = LevelError
	l.Warn("quiet")
	l.Printf("quiet")
	assert.Empty(t, buf.String())
	l.Error("loud")
	assert.Contains(t, buf.String(), "ERROR loud")
}

func TestConsoleLogger_NilOutput(t *testing.T) {
	l := New(nil)
	assert.NotPanics(t, func() { l.Error("nowhere") })
}
