package puzzle

// OutcomeKind names the single effect one engine call had.
type OutcomeKind string

const (
	OutcomeIgnored       OutcomeKind = "ignored"        // no level loaded or unknown level ID
	OutcomeRejected      OutcomeKind = "rejected"       // wall or color gate
	OutcomeEntered       OutcomeKind = "entered"        // plain move
	OutcomeToggled       OutcomeKind = "toggled"        // entered a switch, color flipped
	OutcomeTeleported    OutcomeKind = "teleported"     // portal with at least one partner
	OutcomeLevelComplete OutcomeKind = "level_complete" // reached end, next level loaded
	OutcomeGameComplete  OutcomeKind = "game_complete"  // reached end of the last level
	OutcomeLevelSelected OutcomeKind = "level_selected" // explicit jump
)

// Outcome describes what a transition did.
type Outcome struct {
	Kind   OutcomeKind
	Target Position // cell the call aimed at
	From   Position // player position before the call
	To     Position // player position after the call
	Level  int      // ID of the level the call was evaluated on
	// NextLevel is the ID of the level that became active, for
	// OutcomeLevelComplete and OutcomeLevelSelected.
	NextLevel int
}

// Completed reports whether the call reached an end cell.
func (o Outcome) Completed() bool {
	return o.Kind == OutcomeLevelComplete || o.Kind == OutcomeGameComplete
}
