package puzzle

// Snapshot is a read-only view of the engine after a transition.
type Snapshot struct {
	LevelID    int
	LevelName  string
	LevelIndex int
	LevelCount int
	Grid       Grid
	Position   Position
	Color      Color
}

// Listener receives the post-transition snapshot and the outcome of every
// call that was not ignored. Listeners run synchronously on the caller's goroutine.
type Listener func(Snapshot, Outcome)

// Engine owns the game state and the level sequence.
// It is not safe for concurrent use; adapters run one engine per session
// and feed it one command at a time.
type Engine struct {
	levels    []Level
	state     State
	rng       RandomSource
	listeners map[int]Listener
	nextSub   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandomSource sets the source used to pick portal destinations.
func WithRandomSource(rng RandomSource) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// NewEngine creates an engine positioned at the start of the first level.
// With no levels the engine is inert: every operation is a no-op.
func NewEngine(levels []Level, opts ...Option) *Engine {
	e := &Engine{
		levels:    levels,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandomSource(0)
	}
	e.state = NewState(levels, 0)
	return e
}

// AttemptMove tries to move the player onto target.
func (e *Engine) AttemptMove(target Position) Outcome {
	next, out := Step(e.state, e.levels, target, e.rng)
	return e.commit(next, out)
}

// DirectionalStep moves one cell in direction d, clamped to the grid.
func (e *Engine) DirectionalStep(d Direction) Outcome {
	if !e.state.Active() {
		return Outcome{Kind: OutcomeIgnored}
	}
	return e.AttemptMove(StepTarget(e.state, d))
}

// JumpToLevel switches to the level with the given ID.
// Unknown IDs are ignored.
func (e *Engine) JumpToLevel(id int) Outcome {
	next, out := JumpTo(e.state, e.levels, id)
	return e.commit(next, out)
}

// Apply executes a command.
func (e *Engine) Apply(cmd Command) Outcome {
	if cmd == nil {
		return Outcome{Kind: OutcomeIgnored, From: e.state.Position, To: e.state.Position}
	}
	return cmd.apply(e)
}

// Subscribe registers a listener and returns a function that removes it.
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = l
	return func() {
		delete(e.listeners, id)
	}
}

func (e *Engine) commit(next State, out Outcome) Outcome {
	if out.Kind == OutcomeIgnored {
		return out
	}
	e.state = next
	if len(e.listeners) == 0 {
		return out
	}
	snap := e.Snapshot()
	for i := 0; i < e.nextSub; i++ {
		if l, ok := e.listeners[i]; ok {
			l(snap, out)
		}
	}
	return out
}

// Ready reports whether a level is loaded and gameplay calls can have effect.
func (e *Engine) Ready() bool {
	return e.state.Active()
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Grid returns the current grid.
func (e *Engine) Grid() Grid {
	return e.state.Grid
}

// Position returns the player position.
func (e *Engine) Position() Position {
	return e.state.Position
}

// Color returns the player color.
func (e *Engine) Color() Color {
	return e.state.Color
}

// LevelIndex returns the index of the current level in the sequence.
func (e *Engine) LevelIndex() int {
	return e.state.LevelIndex
}

// Levels returns the ID and name of every level, in play order.
func (e *Engine) Levels() []LevelInfo {
	infos := make([]LevelInfo, len(e.levels))
	for i, lvl := range e.levels {
		infos[i] = LevelInfo{ID: lvl.ID, Name: lvl.Name}
	}
	return infos
}

// Snapshot returns a read-only view of the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		LevelIndex: e.state.LevelIndex,
		LevelCount: len(e.levels),
		Grid:       e.state.Grid,
		Position:   e.state.Position,
		Color:      e.state.Color,
	}
	if e.state.Active() && e.state.LevelIndex < len(e.levels) {
		lvl := e.levels[e.state.LevelIndex]
		snap.LevelID = lvl.ID
		snap.LevelName = lvl.Name
	}
	return snap
}
