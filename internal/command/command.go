package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/sweeper/internal/mines"
)

type Kind string

const (
	Noop    Kind = "g"
	Open    Kind = "o"
	Flag    Kind = "f"
	Reset   Kind = "n"
	Forfeit Kind = "q"
)

// Maps known commands to number of arguments
var commandNargs = map[Kind]int{
	Noop:    0,
	Open:    2,
	Flag:    2,
	Reset:   0,
	Forfeit: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadCoordinate  = errors.New("coordinates must be integers")
)

type Command struct {
	Kind Kind
	X, Y int
}

func (c Command) String() string {
	if commandNargs[c.Kind] == 2 {
		return fmt.Sprintf("%s %d %d", c.Kind, c.X, c.Y)
	}
	return string(c.Kind)
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoordinate, args[0])
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoordinate, args[1])
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	kind := Kind(strings.ToLower(parts[0]))
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %s takes %d, got %d", ErrArgCount, kind, nargs, len(parts)-1,
		)
	}

	c := Command{Kind: kind}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		c.X, c.Y = x, y
	}
	return c, nil
}

// Apply runs the command against b. Coordinates off the grid surface as a
// wrapped [mines.IndexError].
func (c Command) Apply(b *mines.Board) error {
	switch c.Kind {
	case Noop:
		return nil
	case Open:
		return b.ClickAt(c.X, c.Y, mines.Primary)
	case Flag:
		return b.ClickAt(c.X, c.Y, mines.Secondary)
	case Reset:
		b.Reset()
		return nil
	case Forfeit:
		b.EndGame(false)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Kind)
}

// ExecuteAll runs newline-separated commands in order. Blank lines are
// skipped. Execution stops at the first error or once a command ends the
// game.
func ExecuteAll(b *mines.Board, text string) error {
	for i, line := range byPiece(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c, err := Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		wasOver := b.Stage().Over()
		if err := c.Apply(b); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if !wasOver && b.Stage().Over() {
			return nil
		}
	}
	return nil
}
