package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/mines"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// NewGameDTO holds optional board params. Missing fields fall back to the
// stored settings.
type NewGameDTO struct {
	Width     *int `schema:"width"`
	Height    *int `schema:"height"`
	MineCount *int `schema:"mine_count"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (d NewGameDTO) Params(fallback mines.GameParams) mines.GameParams {
	p := fallback
	if d.Width != nil {
		p.Width = *d.Width
	}
	if d.Height != nil {
		p.Height = *d.Height
	}
	if d.MineCount != nil {
		p.MineCount = *d.MineCount
	}
	return p
}

type ClickDTO struct {
	Kind string `schema:"kind,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func ParseClickDTO(src map[string][]string) (ClickDTO, error) {
	var dto ClickDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type SettingsDTO struct {
	Width     int `schema:"width,required" json:"width"`
	Height    int `schema:"height,required" json:"height"`
	MineCount int `schema:"mine_count,required" json:"mine_count"`
}

func ParseSettingsDTO(src map[string][]string) (SettingsDTO, error) {
	var dto SettingsDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Cell values on the wire. Revealed safe cells carry their count as "0".."8".
const (
	CellHidden  = "hidden"
	CellFlagged = "flagged"
	CellMine    = "mine"
)

func cellValue(c mines.Cell) string {
	switch {
	case c.State == mines.Hidden:
		return CellHidden
	case c.State == mines.Flagged:
		return CellFlagged
	case c.Mine:
		return CellMine
	default:
		return strconv.Itoa(c.Adjacent)
	}
}

type GameDTO struct {
	GameSessionID  string   `json:"game_session_id"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	MineCount      int      `json:"mine_count"`
	Grid           []string `json:"grid"`
	RemainingMines int      `json:"remaining_mines"`
	Stage          string   `json:"stage"`
	ElapsedMs      int64    `json:"elapsed_ms"`
	CreatedAt      int64    `json:"created_at"`
	StartedAt      *int64   `json:"started_at,omitempty"`
	EndedAt        *int64   `json:"ended_at,omitempty"`
}

// NewGameDTOFromSnapshot only exposes what the player can see: hidden cells
// carry neither mines nor counts.
func NewGameDTOFromSnapshot(id int64, createdAt time.Time, s mines.Snapshot) *GameDTO {
	grid := make([]string, len(s.Cells))
	for i, c := range s.Cells {
		grid[i] = cellValue(c)
	}
	dto := &GameDTO{
		GameSessionID:  strconv.FormatInt(id, 10),
		Width:          s.Params.Width,
		Height:         s.Params.Height,
		MineCount:      s.Params.MineCount,
		Grid:           grid,
		RemainingMines: s.Remaining,
		Stage:          s.Stage.String(),
		ElapsedMs:      s.Elapsed.Milliseconds(),
		CreatedAt:      createdAt.UnixMilli(),
	}
	if !s.StartedAt.IsZero() {
		e := s.StartedAt.UnixMilli()
		dto.StartedAt = &e
	}
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		dto.EndedAt = &e
	}
	return dto
}

// WSMessage is written after every websocket message from the client.
type WSMessage struct {
	Game  *GameDTO `json:"game"`
	Error string   `json:"error,omitempty"`
}
