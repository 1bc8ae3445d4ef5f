package session

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Session owns one board. All access to the board goes through the session
// so that concurrent requests form a single call stream.
type Session struct {
	ID        int64
	CreatedAt time.Time

	mu    sync.Mutex
	board *mines.Board
}

func (s *Session) Do(fn func(b *mines.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.board)
}

func (s *Session) Snapshot() mines.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

type Registry struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*Session
	rnd      *rand.Rand
	opts     []mines.Option
	log      *logrus.Logger
}

// NewRegistry returns an empty registry. Every board gets its own PCG source
// seeded from rnd; a nil rnd is replaced by [mines.NewRand].
func NewRegistry(rnd *rand.Rand, log *logrus.Logger, opts ...mines.Option) *Registry {
	if rnd == nil {
		rnd = mines.NewRand()
	}
	return &Registry{
		sessions: make(map[int64]*Session),
		rnd:      rnd,
		opts:     opts,
		log:      log,
	}
}

func (r *Registry) Create(params mines.GameParams) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := rand.New(rand.NewPCG(r.rnd.Uint64(), r.rnd.Uint64()))
	board, err := mines.NewBoard(params, src, r.opts...)
	if err != nil {
		return nil, err
	}

	r.nextID++
	s := &Session{
		ID:        r.nextID,
		CreatedAt: time.Now().UTC(),
		board:     board,
	}
	r.sessions[s.ID] = s

	r.log.WithFields(logrus.Fields{
		"session":    s.ID,
		"params":     params.String(),
		"created_at": s.CreatedAt,
	}).Debug("session created")
	return s, nil
}

func (r *Registry) Get(id int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	r.log.WithField("session", id).Debug("session deleted")
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
