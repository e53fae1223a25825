package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		assert.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogr(t *testing.T) {
	var buf bytes.Buffer
	l := Logr(New(WithOutput(&buf)))

	l.WithName("node").WithName("mixer").Info("Node finished", "reason", "END_OF_STREAM")
	l.V(1).Info("Change state")

	entries := lines(t, &buf)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "Node finished", entries[0]["message"])
	assert.Equal(t, "node/mixer", entries[0]["logger"])
	assert.Equal(t, "END_OF_STREAM", entries[0]["reason"])
	assert.Equal(t, "info", entries[0]["level"])
}

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Logr(New(WithOutput(&buf), WithLevel(zerolog.DebugLevel)))
	l.V(1).Info("Change state")
	assert.Equal(t, 1, len(lines(t, &buf)))

	level, err := ParseLevel("")
	assert.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel("warn")
	assert.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
