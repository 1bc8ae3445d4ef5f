package mines

import (
	"fmt"
	"iter"
	"math"
)

// Largest accepted board dimensions.
const (
	MaxWidth  = 256
	MaxHeight = 256
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func (p GameParams) Total() int {
	return p.Width * p.Height
}

// Validate returns a [*ConfigError] unless the params describe a board with
// dimensions in [1, MaxWidth] x [1, MaxHeight] and no more mines than cells.
func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 ||
		p.Width > MaxWidth || p.Height > MaxHeight ||
		p.Width > math.MaxInt/p.Height ||
		p.MineCount < 0 || p.MineCount > p.Width*p.Height {
		return &ConfigError{p.Width, p.Height, p.MineCount}
	}
	return nil
}

func (p GameParams) InBounds(i int) bool {
	return 0 <= i && i < p.Total()
}

// Index maps grid coordinates to a row-major cell index. Coordinates off the
// grid map to -1 so that they never alias a cell in a neighbouring row.
func (p GameParams) Index(x, y int) int {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return -1
	}
	return x + p.Width*y
}

// Neighbors yields the up to eight cells around i. Rows above and below are
// only visited when they exist and columns never wrap to the next row.
func (p GameParams) Neighbors(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		w := p.Width
		x := i % w
		left, right := x > 0, x+1 < w

		if i >= w {
			if left && !yield(i-w-1) {
				return
			}
			if !yield(i - w) {
				return
			}
			if right && !yield(i-w+1) {
				return
			}
		}

		if left && !yield(i-1) {
			return
		}
		if right && !yield(i+1) {
			return
		}

		if i < p.Total()-w {
			if left && !yield(i+w-1) {
				return
			}
			if !yield(i + w) {
				return
			}
			if right && !yield(i+w+1) {
				return
			}
		}
	}
}
