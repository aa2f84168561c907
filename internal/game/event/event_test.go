package event_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/scoundrel/internal/game/event"
)

func TestNew_PopulatesIdentity(t *testing.T) {
	e := event.New("game-1", event.CardFaced, 3, map[string]any{"card": "Ogre"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "game-1", e.GameID)
	assert.Equal(t, event.CardFaced, e.Kind)
	assert.Equal(t, 3, e.Turn)
	assert.False(t, e.Timestamp.IsZero())
	assert.Nil(t, e.State)
}

func TestWithState(t *testing.T) {
	e := event.New("g", event.GameOver, 9, nil)
	with := e.WithState(map[string]any{"health": 8})
	assert.Nil(t, e.State, "original must be unchanged")
	assert.NotNil(t, with.State)
}

func TestJSONLSink_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := event.NewJSONLSink(&buf)

	require.NoError(t, sink.Record(event.New("g", event.RoomDrawn, 1, map[string]any{"cards": []string{"Ogre", "Sword"}})))
	require.NoError(t, sink.Record(event.New("g", event.GameOver, 2, map[string]any{"victory": true, "score": 8, "reason": "victory"})))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	assert.Equal(t, "game_over", decoded["event"])
	data := decoded["data"].(map[string]any)
	assert.Equal(t, true, data["victory"])
	assert.Equal(t, "victory", data["reason"])
}

type failingSink struct{}

func (failingSink) Record(event.Event) error { return errors.New("boom") }

type countingSink struct{ n int }

func (c *countingSink) Record(event.Event) error {
	c.n++
	return nil
}

func TestMultiSink_FansOutAndReportsFirstError(t *testing.T) {
	counter := &countingSink{}
	sink := event.NewMultiSink(failingSink{}, counter, nil)

	err := sink.Record(event.New("g", event.RoomAvoided, 1, nil))
	require.Error(t, err)
	assert.Equal(t, 1, counter.n, "later sinks still receive the event")
}

func TestZapSink_Records(t *testing.T) {
	sink := event.NewZapSink(zap.NewNop())
	require.NoError(t, sink.Record(event.New("g", event.GameStarted, 0, map[string]any{"seed": int64(42)})))
}

func TestNopSink(t *testing.T) {
	require.NoError(t, event.NopSink{}.Record(event.Event{}))
}
