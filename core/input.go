package core

import (
	"fmt"
	"strings"
)

// Input is a discrete message consumed by a session.
type Input uint8

const (
	// InputNone is the zero value and is never processed.
	InputNone Input = iota
	// InputStartGame moves a new game into play.
	InputStartGame
	// InputEndGame quits the game.
	InputEndGame
	// InputTick is a gravity tick.
	InputTick
	// InputLeft shifts the falling piece one column left.
	InputLeft
	// InputRight shifts the falling piece one column right.
	InputRight
	// InputDown requests a soft drop.
	InputDown
	// InputDrop hard-drops and locks the falling piece.
	InputDrop
	// InputHold stashes or swaps the falling piece with the held one.
	InputHold
	// InputRestoreHold brings the held piece back into play.
	InputRestoreHold
	// InputCw rotates clockwise.
	InputCw
	// InputCcw rotates counter-clockwise.
	InputCcw
)

var inputNames = [...]string{
	InputNone:        "None",
	InputStartGame:   "StartGame",
	InputEndGame:     "EndGame",
	InputTick:        "TickGame",
	InputLeft:        "Left",
	InputRight:       "Right",
	InputDown:        "Down",
	InputDrop:        "Drop",
	InputHold:        "Hold",
	InputRestoreHold: "RestoreHold",
	InputCw:          "Cw",
	InputCcw:         "Ccw",
}

func (in Input) String() string {
	if int(in) < len(inputNames) {
		return inputNames[in]
	}
	return fmt.Sprintf("Input(%d)", uint8(in))
}

// ParseInput resolves a case-insensitive input name such as "left" or
// "TickGame". "tick" is accepted as an alias of TickGame.
func ParseInput(s string) (Input, error) {
	if strings.EqualFold(s, "tick") {
		return InputTick, nil
	}
	for i, name := range inputNames {
		if i != int(InputNone) && strings.EqualFold(s, name) {
			return Input(i), nil
		}
	}
	return InputNone, fmt.Errorf("unknown input %q", s)
}
