package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Clock func() time.Time

type Option func(*Board)

// WithClock replaces the wall clock used for start and end timestamps.
func WithClock(now Clock) Option {
	return func(b *Board) {
		b.now = now
	}
}

// NewRand returns a PCG source seeded from the runtime's random hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Board holds the full state of one game. It is not safe for concurrent use;
// callers serialise access to it.
type Board struct {
	params    GameParams
	cells     []Cell
	remaining int
	stage     Stage
	startedAt time.Time
	endedAt   time.Time
	rnd       *rand.Rand
	now       Clock
}

// NewBoard validates params and returns a board with mines already placed.
// A nil rnd is replaced by [NewRand].
func NewBoard(params GameParams, rnd *rand.Rand, opts ...Option) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	b := &Board{
		params: params,
		cells:  make([]Cell, params.Total()),
		rnd:    rnd,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.clear()
	b.setMines()
	return b, nil
}

func (b *Board) clear() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
	b.remaining = b.params.MineCount
	b.stage = Waiting
	b.startedAt = time.Time{}
	b.endedAt = time.Time{}
}

// setMines draws MineCount distinct cells, redrawing on duplicates, then
// counts mined neighbours for every other cell.
func (b *Board) setMines() {
	total := b.params.Total()
	for placed := 0; placed < b.params.MineCount; {
		i := b.rnd.IntN(total)
		if b.cells[i].Mine {
			continue
		}
		b.cells[i].Mine = true
		placed++
	}
	b.countAdjacent()
}

func (b *Board) countAdjacent() {
	for i := range b.cells {
		if b.cells[i].Mine {
			continue
		}
		n := 0
		for j := range b.params.Neighbors(i) {
			if b.cells[j].Mine {
				n++
			}
		}
		b.cells[i].Adjacent = n
	}
}

func (b *Board) checkIndex(i int) error {
	if !b.params.InBounds(i) {
		return &IndexError{Index: i, Total: b.params.Total()}
	}
	return nil
}

// Reveal opens cell i. Flagged and revealed cells are left alone. Opening a
// cell with no mined neighbours floods outwards through the empty region and
// its numbered border; the flood never opens flagged cells or mines.
func (b *Board) Reveal(i int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	b.reveal(i)
	return nil
}

func (b *Board) reveal(i int) {
	c := &b.cells[i]
	if c.State != Hidden {
		return
	}
	c.State = Revealed
	if c.Mine || c.Adjacent != 0 {
		return
	}

	todo := []int{i}
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for k := range b.params.Neighbors(j) {
			n := &b.cells[k]
			if n.State != Hidden || n.Mine {
				continue
			}
			n.State = Revealed
			if n.Adjacent == 0 {
				todo = append(todo, k)
			}
		}
	}
}

// ToggleFlag flips cell i between hidden and flagged. Revealed cells cannot
// be flagged.
func (b *Board) ToggleFlag(i int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	b.toggleFlag(i)
	return nil
}

func (b *Board) toggleFlag(i int) {
	c := &b.cells[i]
	switch c.State {
	case Hidden:
		c.State = Flagged
		b.remaining--
	case Flagged:
		c.State = Hidden
		b.remaining++
	}
}

// ApplyClick is the per-turn player action. Clicks on a finished game are
// ignored. The first accepted click starts the clock.
func (b *Board) ApplyClick(i int, kind Click) error {
	if kind != Primary && kind != Secondary {
		return fmt.Errorf("%w: %s", ErrClickKind, kind)
	}
	if err := b.checkIndex(i); err != nil {
		return err
	}
	if b.stage.Over() {
		return nil
	}
	if b.stage == Waiting {
		b.start()
	}

	switch kind {
	case Primary:
		if b.cells[i].State != Flagged {
			b.reveal(i)
			if b.cells[i].Mine {
				b.EndGame(false)
			}
		}
	case Secondary:
		b.toggleFlag(i)
	}

	if b.CheckWin() {
		b.EndGame(true)
	}
	return nil
}

// ClickAt is [Board.ApplyClick] addressed by grid coordinates. Errors name
// the coordinates rather than the row-major index.
func (b *Board) ClickAt(x, y int, kind Click) error {
	i := b.params.Index(x, y)
	if i < 0 {
		return fmt.Errorf("cell (%d, %d): %w", x, y, &IndexError{Index: i, Total: b.params.Total()})
	}
	if err := b.ApplyClick(i, kind); err != nil {
		return fmt.Errorf("cell (%d, %d): %w", x, y, err)
	}
	return nil
}

func (b *Board) start() {
	b.startedAt = b.now()
	b.stage = Playing
	Log.WithField("params", b.params.String()).Debug("game started")
}

// CheckWin reports whether every non-mine cell is revealed. Flagged safe
// cells still count as uncleared. It is false outside of [Playing].
func (b *Board) CheckWin() bool {
	if b.stage != Playing {
		return false
	}
	for _, c := range b.cells {
		if !c.Mine && c.State != Revealed {
			return false
		}
	}
	return true
}

// EndGame moves the board to its terminal stage. A lost board has all of its
// mines revealed. Ending an already finished game does nothing.
func (b *Board) EndGame(won bool) {
	if b.stage.Over() {
		return
	}
	if b.stage == Waiting {
		b.start()
	}
	if !won {
		for i := range b.cells {
			if b.cells[i].Mine {
				b.cells[i].State = Revealed
			}
		}
	}
	b.stage = Lost
	if won {
		b.stage = Won
	}
	b.endedAt = b.now()

	Log.WithFields(logrus.Fields{
		"params":  b.params.String(),
		"stage":   b.stage.String(),
		"elapsed": b.Elapsed().String(),
	}).Debug("game over")
}

// Reset starts a new game on the same board with a fresh mine layout.
func (b *Board) Reset() {
	b.clear()
	b.setMines()
	Log.WithField("params", b.params.String()).Debug("board reset")
}

func (b *Board) Params() GameParams {
	return b.params
}

func (b *Board) Index(x, y int) int {
	return b.params.Index(x, y)
}

func (b *Board) Cell(i int) (Cell, error) {
	if err := b.checkIndex(i); err != nil {
		return Cell{}, err
	}
	return b.cells[i], nil
}

// Cells returns a copy of the grid in row-major order.
func (b *Board) Cells() []Cell {
	return slices.Clone(b.cells)
}

// Remaining is the mine count minus the number of flags. It goes negative
// when the player places more flags than there are mines.
func (b *Board) Remaining() int {
	return b.remaining
}

func (b *Board) Stage() Stage {
	return b.stage
}

func (b *Board) StartedAt() time.Time {
	return b.startedAt
}

func (b *Board) EndedAt() time.Time {
	return b.endedAt
}

func (b *Board) Elapsed() time.Duration {
	switch b.stage {
	case Waiting:
		return 0
	case Playing:
		return b.now().Sub(b.startedAt)
	default:
		return b.endedAt.Sub(b.startedAt)
	}
}
