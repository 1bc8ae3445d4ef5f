package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/handlers"
	"github.com/vancomm/sweeper/internal/store"
)

func newApp(t *testing.T) *App {
	t.Helper()

	ctx := context.Background()
	db, err := store.Open(ctx, filepath.Join(t.TempDir(), "sweeper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	settings, err := store.NewSettings(ctx, db)
	require.NoError(t, err)

	log, _ := logtest.NewNullLogger()
	cfg := config.Default()
	cfg.ShutdownTimeout = config.Duration{Duration: time.Second}
	return New(log, cfg, settings)
}

func TestServe(t *testing.T) {
	a := newApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()

	resp, err := http.Post(base+"/game?width=5&height=4&mine_count=3", "", nil)
	require.NoError(t, err)
	var game handlers.GameDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 20, len(game.Grid))

	req, err := http.NewRequest(http.MethodPut, base+"/settings?width=8&height=8&mine_count=8", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(base+"/game", "", nil)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
	resp.Body.Close()
	assert.Equal(t, 8, game.Width)
	assert.Equal(t, 8, game.MineCount)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHandlerAppliesCors(t *testing.T) {
	a := newApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.Serve(ctx, ln) }()

	req, err := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/settings", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStartRejectsBadAddr(t *testing.T) {
	a := newApp(t)
	a.cfg.Addr = "not-an-addr"
	assert.Error(t, a.Start(context.Background()))
}
