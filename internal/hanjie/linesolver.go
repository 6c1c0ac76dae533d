package hanjie

import "sort"

/*
Search nodes are pairs (pos, block): pos is the index of the first cell not
yet claimed by a placed block, block is the index of the next clue awaiting
placement. The root is (0, 0); a node is accepting when every block has been
placed and pos lies strictly past the last pre-filled cell.

Blocks are always placed leftmost-first, and a candidate placement is only
generated if it either starts as early as possible or covers one of the
upcoming runs of pre-filled cells. That ordering is load-bearing: when a
node runs out of room for its remaining blocks, no later placement can do
better, so the whole search fails at once (see hasSolution).
*/
type node struct {
	pos   int
	block int
}

type lineSolver struct {
	line   Line // private copy, with a trailing Empty sentinel
	clues  []int
	length int

	// suffix[k] holds the cells needed to place blocks k.. onward: each
	// block plus one separating gap. The sentinel cell absorbs the gap
	// demanded of the final block.
	suffix []int

	// Ascending positions of pre-filled cells, with a -1 sentinel in
	// front so the "last filled cell" lookup works on empty lines.
	filled []int
}

func newLineSolver(line Line, clues []int) *lineSolver {
	s := &lineSolver{
		line:   make(Line, len(line)+1),
		clues:  clues,
		length: len(line) + 1,
	}
	copy(s.line, line)
	s.line[len(line)] = Empty

	s.suffix = make([]int, len(clues)+1)
	for k := len(clues) - 1; k >= 0; k-- {
		s.suffix[k] = s.suffix[k+1] + clues[k] + 1
	}

	s.filled = []int{-1}
	for i, c := range s.line {
		if c == Filled {
			s.filled = append(s.filled, i)
		}
	}
	return s
}

// reject reports that the remaining blocks no longer fit between pos and
// the end of the line.
func (s *lineSolver) reject(n node) bool {
	return s.suffix[n.block] > s.length-n.pos
}

// accept reports that every block has been placed and no pre-filled cell
// was left uncovered.
func (s *lineSolver) accept(n node) bool {
	return n.block == len(s.clues) && n.pos > s.filled[len(s.filled)-1]
}

// allowed reports whether a block of the given size may occupy the cells
// immediately preceding end: none of them may be Empty, and the cell at
// end must not itself be Filled (the block needs a non-filled boundary).
func (s *lineSolver) allowed(size, end int) bool {
	if s.line[end] == Filled {
		return false
	}
	for i := end - size; i < end; i++ {
		if s.line[i] == Empty {
			return false
		}
	}
	return true
}

// children yields the placements worth trying for the next block, in
// ascending end-position order: the leftmost fit, then the leftmost fit
// covering one upcoming filled run, then two runs, and so on. Placements
// that would skip past a filled cell without covering it are never
// generated.
func (s *lineSolver) children(n node) []node {
	if n.block == len(s.clues) {
		return nil
	}
	size := s.clues[n.block]

	// Rightmost cell the block may reach without skipping a filled cell.
	i := sort.SearchInts(s.filled, n.pos)
	nextFilled := s.length
	if i < len(s.filled) {
		nextFilled = s.filled[i]
	}
	last := min(s.length-1, nextFilled+size)

	var out []node
	end := n.pos + size
	for end <= last {
		for !s.allowed(size, end) {
			end++
			if end > last {
				return out
			}
		}
		out = append(out, node{end + 1, n.block + 1})
		for s.line[end] != Filled {
			end++
			if end > last {
				return out
			}
		}
		end++
	}
	return out
}

// hasSolution runs the depth-first search with an explicit stack. Children
// are pushed in reverse so the leftmost placement is explored first; that
// makes the rejection test terminal for the whole line, not just for one
// branch.
func (s *lineSolver) hasSolution() bool {
	stack := []node{{0, 0}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.reject(n) {
			return false
		}
		if s.accept(n) {
			return true
		}

		next := s.children(n)
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return false
}

// hasLineSolution reports whether the line, as currently constrained,
// admits at least one arrangement of its clue blocks. The line is not
// mutated.
func hasLineSolution(line Line, clues []int) bool {
	return newLineSolver(line, clues).hasSolution()
}
