package puzzle

// Command is an input the engine consumes synchronously through Apply.
// Adapters translate key presses, clicks and menu picks into commands.
type Command interface {
	apply(e *Engine) Outcome
}

// Move steps one cell in a direction.
type Move struct {
	Direction Direction
}

func (c Move) apply(e *Engine) Outcome {
	return e.DirectionalStep(c.Direction)
}

// Click targets a specific cell.
type Click struct {
	Position Position
}

func (c Click) apply(e *Engine) Outcome {
	return e.AttemptMove(c.Position)
}

// SelectLevel jumps to a level by ID.
type SelectLevel struct {
	ID int
}

func (c SelectLevel) apply(e *Engine) Outcome {
	return e.JumpToLevel(c.ID)
}
