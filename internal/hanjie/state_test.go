package hanjie

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Demo())
	require.NoError(t, p.Solve(context.Background()))

	buf, err := p.Bytes()
	require.NoError(t, err)

	restored, err := DecodePuzzle(buf)
	require.NoError(t, err)

	assert.Equal(t, p.Width(), restored.Width())
	assert.Equal(t, p.Height(), restored.Height())
	assert.Equal(t, p.Cells(), restored.Cells())
}

// An interrupted solve must resume from its snapshot and reach the same
// grid as an uninterrupted one.
func TestStateResume(t *testing.T) {
	t.Parallel()

	interrupted := NewPuzzle(Demo())
	err := interrupted.SolveWith(context.Background(), SolveOptions{MaxPasses: 1})
	require.ErrorIs(t, err, ErrPassLimit)

	buf, err := interrupted.Bytes()
	require.NoError(t, err)
	resumed, err := DecodePuzzle(buf)
	require.NoError(t, err)
	require.NoError(t, resumed.Solve(context.Background()))

	reference := NewPuzzle(Demo())
	require.NoError(t, reference.Solve(context.Background()))

	assert.Equal(t, reference.Cells(), resumed.Cells())
}
