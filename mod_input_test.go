package sced

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_Press(t *testing.T) {
	var in Input

	in.Press(KeyS, true)
	assert.True(t, in.JustPressed[KeyS])
	assert.True(t, in.Pressed[KeyS])

	in.Press(KeyS, true)
	assert.False(t, in.JustPressed[KeyS], "held keys fire once")

	in.Press(KeyS, false)
	assert.True(t, in.JustReleased[KeyS])
	assert.False(t, in.Pressed[KeyS])
}

func TestHotkeySystem(t *testing.T) {
	app := NewApp()
	logger := NewLogger(&discard{}, &discard{}, "", false)
	app.addResources(logger)

	var in Input
	in.Press(KeyF1, true)
	hotkeySystem(&in, app.Commands())
	assert.True(t, logger.DebugEnabled())
	assert.False(t, app.Stopping())

	in.Press(KeyEscape, true)
	hotkeySystem(&in, app.Commands())
	assert.True(t, app.Stopping())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
