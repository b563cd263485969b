package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageAppendsLogLine(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := RegistrationCreatedEvent{
		RegistrationID: 3,
		EventID:        7,
		EventTitle:     "Go Meetup",
		Name:           "Ali Veli",
		Email:          "ali@example.com",
		RegisteredAt:   "2026-01-15T18:30:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))
	require.NoError(t, handleMessage(body)) // appends, does not truncate

	data, err := os.ReadFile(filepath.Join("logs", "registrations.log"))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "registration_id=3")
	assert.Contains(t, out, "event_id=7")
	assert.Contains(t, out, `"Go Meetup"`)
	assert.Contains(t, out, "ali@example.com")
	assert.Equal(t, 2, countLines(out))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, handleMessage([]byte("{not json")))
}
