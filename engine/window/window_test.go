package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.True(t, w.vsync)
	assert.Equal(t, []uint32{common.KeyEsc, common.KeySpace}, w.closeKeys)
	assert.False(t, w.IsRunning(), "no platform window yet")
}

func TestOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("sandbox"),
		WithSize(1024, 768),
		WithSizeLimits(100, 100, 2000, 2000),
		WithVSync(false),
		WithSamples(4),
		WithCursorCaptured(true),
		WithCloseKeys(common.KeyR),
	)
	assert.Equal(t, "sandbox", w.title)
	assert.Equal(t, 1024, w.Width())
	assert.Equal(t, 768, w.Height())
	assert.Equal(t, 2000, w.maxWidth)
	assert.False(t, w.vsync)
	assert.Equal(t, 4, w.samples)
	assert.True(t, w.cursorCaptured)
	assert.Equal(t, []uint32{common.KeyR}, w.closeKeys)

	assert.Equal(t, "oxy-gl", newEngineWindow(WithTitle("")).title)
}

func TestHandleKeyTracksState(t *testing.T) {
	w := newEngineWindow()
	var down, up []uint32
	w.SetKeyDownCallback(func(k uint32) { down = append(down, k) })
	w.SetKeyUpCallback(func(k uint32) { up = append(up, k) })

	w.handleKey(common.KeyW, true)
	assert.True(t, w.IsKeyPressed(common.KeyW))
	assert.False(t, w.IsKeyPressed(common.KeyA))

	w.handleKey(common.KeyW, false)
	assert.False(t, w.IsKeyPressed(common.KeyW))
	assert.Equal(t, []uint32{common.KeyW}, down)
	assert.Equal(t, []uint32{common.KeyW}, up)
}

func TestCloseKeysRequestClose(t *testing.T) {
	for _, key := range []uint32{common.KeyEsc, common.KeySpace} {
		w := newEngineWindow()
		called := false
		w.SetKeyDownCallback(func(uint32) { called = true })

		w.handleKey(key, true)
		assert.True(t, w.closeRequested)
		assert.False(t, called, "close keys are not forwarded")
	}

	w := newEngineWindow(WithCloseKeys())
	w.handleKey(common.KeyEsc, true)
	assert.False(t, w.closeRequested)
}

func TestResizeScrollMouseCallbacks(t *testing.T) {
	w := newEngineWindow()
	var size [2]int
	var scroll float32
	var cursor [2]float64
	w.SetResizeCallback(func(width, height int) { size = [2]int{width, height} })
	w.SetScrollCallback(func(delta float32) { scroll = delta })
	w.SetMouseMoveCallback(func(x, y float64) { cursor = [2]float64{x, y} })

	w.handleResize(640, 480)
	w.handleScroll(-1.5)
	w.handleMouseMove(12.5, 40)

	assert.Equal(t, [2]int{640, 480}, size)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, float32(-1.5), scroll)
	assert.Equal(t, [2]float64{12.5, 40}, cursor)
}

func TestCloseWithoutPlatform(t *testing.T) {
	w := newEngineWindow()
	assert.Error(t, w.Close())
	assert.Zero(t, w.Time())
	w.PollEvents()
	w.SwapBuffers()
	w.SetCursorCaptured(true)
}
