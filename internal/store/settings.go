package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vancomm/sweeper/internal/mines"
)

const boardParamsKey = "board_params"

// Settings persists the board size and mine count chosen for new games.
type Settings struct {
	store *Store
}

func NewSettings(ctx context.Context, db *sql.DB) (*Settings, error) {
	s, err := New(ctx, db, "settings")
	if err != nil {
		return nil, err
	}
	return &Settings{store: s}, nil
}

// BoardParams returns the stored params, or fallback when nothing has been
// stored yet.
func (s *Settings) BoardParams(ctx context.Context, fallback mines.GameParams) (mines.GameParams, error) {
	var p mines.GameParams
	err := s.store.Get(ctx, boardParamsKey, &p)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return mines.GameParams{}, err
	}
	return p, nil
}

// SetBoardParams stores p after checking that it describes a valid board.
func (s *Settings) SetBoardParams(ctx context.Context, p mines.GameParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.store.Set(ctx, boardParamsKey, p)
}
