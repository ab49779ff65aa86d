package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewport_Resize(t *testing.T) {
	calls := 0
	vp := NewViewport(func(frame Frame) (*Scene, error) {
		calls++
		g, err := BuildGauge(frame, 42, DefaultGaugeOptions())
		if err != nil {
			return nil, err
		}
		return g.Scene(), nil
	})

	scene, err := vp.Resize(0, 0)
	require.NoError(t, err)
	assert.Nil(t, scene)
	assert.Nil(t, vp.Play())
	assert.Zero(t, calls)

	scene, err = vp.Resize(400, 300)
	require.NoError(t, err)
	require.NotNil(t, scene)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 400.0, scene.Frame.Width)

	player := vp.Play()
	require.NotNil(t, player)
	shapes, err := player.Frame(500 * time.Millisecond)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Greater(t, shapes[0].Arc.Sweep, 0.0)
	assert.Less(t, shapes[0].Arc.Sweep, 42.0)
	assert.False(t, player.Done(500*time.Millisecond))
	assert.True(t, player.Done(time.Second))

	scene, err = vp.Resize(0, 0)
	require.NoError(t, err)
	assert.Nil(t, scene)
	assert.Nil(t, vp.Scene())
	assert.Equal(t, uint64(3), vp.Generation())

	_, err = player.Frame(time.Second)
	assert.ErrorIs(t, err, ErrStale)
}

func TestViewport_LayoutError(t *testing.T) {
	vp := NewViewport(func(frame Frame) (*Scene, error) {
		_, err := BuildBars(frame, nil, DefaultBarOptions())
		return nil, err
	})
	_, err := vp.Resize(800, 300)
	assert.ErrorIs(t, err, ErrEmptySeries)
	assert.Nil(t, vp.Scene())
	w, h := vp.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 300.0, h)
}
