package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionConfirm          // Enter
	ActionBack             // B, Escape - back to the level menu
	ActionQuit             // Q, Ctrl+C
	ActionNextLevel        // ] or n
	ActionPrevLevel        // [ or p
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four directional steps.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}
