package puzzle

// State is the mutable aggregate of a running game.
// It is a plain value: transitions take a State and return the next one.
type State struct {
	LevelIndex int
	Grid       Grid
	Position   Position
	Color      Color
}

// NewState enters the level at index: its grid, its start cell and red.
// An out-of-range index yields the zero State, which has an empty grid.
func NewState(levels []Level, index int) State {
	if index < 0 || index >= len(levels) {
		return State{}
	}
	grid := levels[index].Grid
	return State{
		LevelIndex: index,
		Grid:       grid,
		Position:   FindStart(grid),
		Color:      ColorRed,
	}
}

// Active reports whether the state holds a playable grid.
func (s State) Active() bool {
	return !s.Grid.Empty()
}

// Step applies the move policy for a move onto target and returns the next
// state with a description of what happened. The rules are checked against
// the target cell before anything changes:
//
//  1. walls reject the move
//  2. red/blue zones reject a player of the other color
//  3. a portal with partners of the same kind teleports to one of them,
//     chosen through rng, and the move ends there
//  4. a switch flips the color, then the move continues as a normal entry
//  5. the player moves onto target
//  6. an end cell loads the next level, or stays put on the last one
func Step(s State, levels []Level, target Position, rng RandomSource) (State, Outcome) {
	out := Outcome{Kind: OutcomeIgnored, Target: target, From: s.Position, To: s.Position}
	if !s.Active() || s.LevelIndex < 0 || s.LevelIndex >= len(levels) {
		return s, out
	}
	out.Level = levels[s.LevelIndex].ID

	kind := s.Grid.At(target)
	if kind == CellWall || !s.Color.Admits(kind) {
		out.Kind = OutcomeRejected
		return s, out
	}

	if kind.IsPortal() {
		if partners := portalPartners(s.Grid, kind, target); len(partners) > 0 {
			dest := partners[pick(rng, len(partners))]
			s.Position = dest
			out.Kind = OutcomeTeleported
			out.To = dest
			return s, out
		}
	}

	out.Kind = OutcomeEntered
	if kind == CellSwitch {
		s.Color = s.Color.Toggle()
		out.Kind = OutcomeToggled
	}
	s.Position = target
	out.To = target

	if kind != CellEnd {
		return s, out
	}
	if s.LevelIndex+1 >= len(levels) {
		out.Kind = OutcomeGameComplete
		return s, out
	}
	next := NewState(levels, s.LevelIndex+1)
	out.Kind = OutcomeLevelComplete
	out.NextLevel = levels[next.LevelIndex].ID
	out.To = next.Position
	return next, out
}

// StepTarget returns the cell one step from the current position in
// direction d. Row and column are clamped to the grid independently, so a
// step off the edge targets the current cell.
func StepTarget(s State, d Direction) Position {
	dr, dc := d.Delta()
	return P(
		clamp(s.Position.Row+dr, 0, s.Grid.Rows()-1),
		clamp(s.Position.Col+dc, 0, s.Grid.Cols()-1),
	)
}

// JumpTo enters the level with the given ID. Unknown IDs leave s unchanged.
func JumpTo(s State, levels []Level, id int) (State, Outcome) {
	out := Outcome{Kind: OutcomeIgnored, From: s.Position, To: s.Position}
	if s.LevelIndex >= 0 && s.LevelIndex < len(levels) && s.Active() {
		out.Level = levels[s.LevelIndex].ID
	}
	idx := indexOf(levels, id)
	if idx < 0 {
		return s, out
	}
	next := NewState(levels, idx)
	out.Kind = OutcomeLevelSelected
	out.NextLevel = id
	out.To = next.Position
	return next, out
}

// portalPartners returns the other cells of the same portal kind.
func portalPartners(g Grid, kind CellKind, from Position) []Position {
	all := g.Positions(kind)
	partners := make([]Position, 0, len(all))
	for _, p := range all {
		if p != from {
			partners = append(partners, p)
		}
	}
	return partners
}

func pick(rng RandomSource, n int) int {
	if rng == nil || n == 1 {
		return 0
	}
	i := rng.Intn(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

// clamp restricts val to [lo, hi]. hi < lo collapses to lo.
func clamp(val, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
