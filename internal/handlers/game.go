package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/command"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

// SettingsStore is the part of the settings store the handlers need.
type SettingsStore interface {
	BoardParams(ctx context.Context, fallback mines.GameParams) (mines.GameParams, error)
	SetBoardParams(ctx context.Context, p mines.GameParams) error
}

type GameHandler struct {
	log      logrus.FieldLogger
	sessions *session.Registry
	settings SettingsStore
	defaults mines.GameParams
	ws       *config.WebSocket
}

func NewGameHandler(
	log logrus.FieldLogger,
	sessions *session.Registry,
	settings SettingsStore,
	defaults mines.GameParams,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		settings: settings,
		defaults: defaults,
		ws:       ws,
	}
}

// statusOf maps an error to the status code it should be reported with.
func statusOf(err error) int {
	var multi schema.MultiError
	switch {
	case errors.As(err, &multi),
		errors.Is(err, mines.ErrConfig),
		errors.Is(err, mines.ErrIndex),
		errors.Is(err, mines.ErrClickKind),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrArgCount),
		errors.Is(err, command.ErrBadCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) sendError(w http.ResponseWriter, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		internalError(w, g.log, msg, err)
		return
	}
	sendErrorOrLog(w, g.log, status, err)
}

func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, errors.New("invalid game id"))
		return nil, false
	}
	s, err := g.sessions.Get(id)
	if err != nil {
		g.sendError(w, "unable to find session", err)
		return nil, false
	}
	return s, true
}

func (g GameHandler) sendGame(w http.ResponseWriter, status int, s *session.Session) {
	sendJSONOrLog(w, g.log, status, NewGameDTOFromSnapshot(s.ID, s.CreatedAt, s.Snapshot()))
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	fallback, err := g.settings.BoardParams(r.Context(), g.defaults)
	if err != nil {
		internalError(w, g.log, "unable to load board settings", err)
		return
	}

	s, err := g.sessions.Create(dto.Params(fallback))
	if err != nil {
		g.sendError(w, "unable to create session", err)
		return
	}

	g.sendGame(w, http.StatusCreated, s)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.sendGame(w, http.StatusOK, s)
}

func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	dto, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	kind, err := mines.ParseClick(dto.Kind)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	err = s.Do(func(b *mines.Board) error {
		return b.ClickAt(dto.X, dto.Y, kind)
	})
	if err != nil {
		g.sendError(w, "unable to apply click", err)
		return
	}

	g.sendGame(w, http.StatusOK, s)
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	_ = s.Do(func(b *mines.Board) error {
		b.Reset()
		return nil
	})
	g.sendGame(w, http.StatusOK, s)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	_ = s.Do(func(b *mines.Board) error {
		b.EndGame(false)
		return nil
	})
	g.sendGame(w, http.StatusOK, s)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	if err := g.sessions.Delete(s.ID); err != nil {
		g.sendError(w, "unable to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
