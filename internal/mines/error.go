package mines

import (
	"errors"
	"fmt"
)

var (
	ErrConfig    = errors.New("invalid board configuration")
	ErrIndex     = errors.New("cell index out of range")
	ErrClickKind = errors.New("unknown click kind")
)

// ConfigError reports board parameters that cannot produce a board.
type ConfigError struct {
	Width, Height, MineCount int
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	switch {
	case e.Width <= 0:
		return fmt.Sprintf("%s: width must be positive, got %d", ErrConfig, e.Width)
	case e.Height <= 0:
		return fmt.Sprintf("%s: height must be positive, got %d", ErrConfig, e.Height)
	case e.Width > MaxWidth:
		return fmt.Sprintf("%s: width must be at most %d, got %d", ErrConfig, MaxWidth, e.Width)
	case e.Height > MaxHeight:
		return fmt.Sprintf("%s: height must be at most %d, got %d", ErrConfig, MaxHeight, e.Height)
	case e.MineCount < 0:
		return fmt.Sprintf("%s: negative mine count %d", ErrConfig, e.MineCount)
	default:
		return fmt.Sprintf(
			"%s: %d mines do not fit on a %dx%d board",
			ErrConfig, e.MineCount, e.Width, e.Height,
		)
	}
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// IndexError reports a cell index outside [0, Total).
type IndexError struct {
	Index, Total int
}

// [IndexError] implements [error]
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d not in [0, %d)", ErrIndex, e.Index, e.Total)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}
