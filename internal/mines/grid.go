package mines

import (
	"fmt"
	"strconv"
)

type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return fmt.Sprintf("CellState(%d)", int8(s))
	}
}

// Cell is one tile of the board. Adjacent is only meaningful when Mine is
// false.
type Cell struct {
	State    CellState
	Mine     bool
	Adjacent int
}

// Glyph renders the cell as the player sees it.
func (c Cell) Glyph() string {
	switch {
	case c.State == Flagged:
		return "!"
	case c.State == Hidden:
		return "#"
	case c.Mine:
		return "*"
	case c.Adjacent == 0:
		return "."
	default:
		return strconv.Itoa(c.Adjacent)
	}
}

type Stage uint8

const (
	Waiting Stage = iota
	Playing
	Lost
	Won
)

func (s Stage) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

func (s Stage) Over() bool {
	return s == Lost || s == Won
}

type Click uint8

const (
	Primary Click = iota + 1
	Secondary
)

func (c Click) String() string {
	switch c {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("Click(%d)", uint8(c))
	}
}

func ParseClick(s string) (Click, error) {
	switch s {
	case "primary", "open":
		return Primary, nil
	case "secondary", "flag":
		return Secondary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrClickKind, s)
	}
}
