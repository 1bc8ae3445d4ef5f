package mines

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is a detached copy of everything a renderer needs.
type Snapshot struct {
	Params    GameParams
	Cells     []Cell
	Remaining int
	Stage     Stage
	StartedAt time.Time
	EndedAt   time.Time
	Elapsed   time.Duration
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Params:    b.params,
		Cells:     b.Cells(),
		Remaining: b.remaining,
		Stage:     b.stage,
		StartedAt: b.startedAt,
		EndedAt:   b.endedAt,
		Elapsed:   b.Elapsed(),
	}
}

func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s mines: %d time: %s\n",
		s.Stage, s.Remaining, s.Elapsed.Truncate(time.Second))
	w := s.Params.Width
	for y := range s.Params.Height {
		for x := range w {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(s.Cells[x+w*y].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Snapshot().String()
}
