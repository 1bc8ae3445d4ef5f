package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/command"
	"github.com/vancomm/sweeper/internal/mines"
)

// maxMessageSize bounds one batch of commands.
const maxMessageSize = 4096

// ConnectWS streams a game over a websocket. Every text message is a batch of
// newline separated commands; the reply is the game state after the batch.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()
	c.SetReadLimit(maxMessageSize)

	log := g.log.WithField("session", s.ID)

	if err := c.WriteJSON(WSMessage{Game: NewGameDTOFromSnapshot(s.ID, s.CreatedAt, s.Snapshot())}); err != nil {
		log.WithError(err).Warn("unable to write message")
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("unable to read message")
			}
			return
		}
		if mt != websocket.TextMessage {
			log.WithField("type", mt).Debug("closing on non-text message")
			return
		}

		var (
			snap    mines.Snapshot
			execErr error
		)
		_ = s.Do(func(b *mines.Board) error {
			execErr = command.ExecuteAll(b, string(message))
			snap = b.Snapshot()
			return nil
		})

		reply := WSMessage{Game: NewGameDTOFromSnapshot(s.ID, s.CreatedAt, snap)}
		if execErr != nil {
			log.WithFields(logrus.Fields{
				"message": string(message),
				"error":   execErr,
			}).Debug("command failed")
			reply.Error = execErr.Error()
		}

		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("unable to write message")
			return
		}
	}
}
