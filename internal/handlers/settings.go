package handlers

import (
	"net/http"

	"github.com/vancomm/sweeper/internal/mines"
)

func settingsDTO(p mines.GameParams) SettingsDTO {
	return SettingsDTO{Width: p.Width, Height: p.Height, MineCount: p.MineCount}
}

func (g GameHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	p, err := g.settings.BoardParams(r.Context(), g.defaults)
	if err != nil {
		internalError(w, g.log, "unable to load board settings", err)
		return
	}
	sendJSONOrLog(w, g.log, http.StatusOK, settingsDTO(p))
}

func (g GameHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSettingsDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	p := mines.GameParams{Width: dto.Width, Height: dto.Height, MineCount: dto.MineCount}
	if err := g.settings.SetBoardParams(r.Context(), p); err != nil {
		g.sendError(w, "unable to store board settings", err)
		return
	}

	g.log.WithField("params", p.String()).Info("board settings updated")
	sendJSONOrLog(w, g.log, http.StatusOK, settingsDTO(p))
}
