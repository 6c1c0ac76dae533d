package handlers

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klofan/hanjie-server/internal/hanjie"
)

func TestCreatePuzzleDTOValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dto     CreatePuzzleDTO
		wantErr bool
	}{
		{
			name: "valid",
			dto: CreatePuzzleDTO{
				RowClues: [][]int{{1}, {1}},
				ColClues: [][]int{{1}, {1}},
			},
		},
		{
			name:    "missing columns",
			dto:     CreatePuzzleDTO{RowClues: [][]int{{1}}},
			wantErr: true,
		},
		{
			name: "non-positive clue",
			dto: CreatePuzzleDTO{
				RowClues: [][]int{{0}},
				ColClues: [][]int{{1}},
			},
			wantErr: true,
		},
		{
			name: "empty clue sequences are fine",
			dto: CreatePuzzleDTO{
				RowClues: [][]int{{}, {}},
				ColClues: [][]int{{}, {}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := test.dto.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSolveQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    SolveQuery
		wantErr bool
	}{
		{"defaults", "", SolveQuery{}, false},
		{
			"all options",
			"workers=4&max_passes=10&format=text",
			SolveQuery{Workers: 4, MaxPasses: 10, Format: "text"},
			false,
		},
		{"unknown keys ignored", "foo=bar", SolveQuery{}, false},
		{"negative workers", "workers=-1", SolveQuery{}, true},
		{"bad format", "format=xml", SolveQuery{}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			values, err := url.ParseQuery(test.raw)
			require.NoError(t, err)

			got, err := ParseSolveQuery(values)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestGridRows(t *testing.T) {
	t.Parallel()

	p := hanjie.NewPuzzle(hanjie.Demo())
	require.NoError(t, p.Solve(context.Background()))

	assert.Equal(t, []string{
		"#####",
		"#.#.#",
		"#.#.#",
		"#.#.#",
		"#####",
	}, GridRows(p))
}
