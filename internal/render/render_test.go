package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klofan/hanjie-server/internal/hanjie"
)

func solvedDemo(t *testing.T) *hanjie.Puzzle {
	t.Helper()
	p := hanjie.NewPuzzle(hanjie.Demo())
	require.NoError(t, p.Solve(context.Background()))
	return p
}

func TestText(t *testing.T) {
	t.Parallel()

	want := "" +
		"#####\n" +
		"#.#.#\n" +
		"#.#.#\n" +
		"#.#.#\n" +
		"#####\n"
	assert.Equal(t, want, Text(solvedDemo(t)))
}

func TestTextUnsolvedCells(t *testing.T) {
	t.Parallel()

	p := hanjie.NewPuzzle(hanjie.Definition{
		RowClues: [][]int{{1}, {1}},
		ColClues: [][]int{{1}, {1}},
	})
	require.NoError(t, p.Solve(context.Background()))
	assert.Equal(t, "??\n??\n", Text(p))
}

func TestPNG(t *testing.T) {
	t.Parallel()

	p := solvedDemo(t)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, p, 10))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	r, g, b, _ := img.At(5, 5).RGBA() // inside the filled top-left cell
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}
