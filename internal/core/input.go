package core

// Action represents a semantic quiz action, abstracted from physical key
// presses and mouse clicks.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Enter, Space - leave the start panel
	ActionPick           // Option key or click on a button
	ActionRestart        // R key - new round after game over
	ActionBack           // Esc - back to the start panel after game over
	ActionHelp           // ? - toggle key help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPick:
		return "Pick"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one discrete player input. Option is only meaningful for ActionPick.
type Input struct {
	Action Action
	Option int
}

// Pick returns a pick input for the given option.
func Pick(option int) Input {
	return Input{Action: ActionPick, Option: option}
}

// Is reports whether the input carries the given action.
func (in Input) Is(a Action) bool {
	return in.Action == a
}
