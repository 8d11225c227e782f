package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/movie-battle/middleware"
	"github.com/Dosada05/movie-battle/services"
	"github.com/go-chi/chi/v5"
)

type BattleHandler struct {
	battleService services.BattleService
}

func NewBattleHandler(bs services.BattleService) *BattleHandler {
	return &BattleHandler{
		battleService: bs,
	}
}

// CreateBattle godoc
// @Summary      Start a new battle
// @Description  Loads the movie pool, samples the contenders and returns the first match with a battle token.
// @Tags         battles
// @Produce      json
// @Success      201  {object}  services.CreatedBattle
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /battles [post]
func (h *BattleHandler) CreateBattle(w http.ResponseWriter, r *http.Request) {
	created, err := h.battleService.CreateBattle(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"battle":     created.Battle,
		"token":      created.Token,
		"expires_at": created.ExpiresAt,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBattle godoc
// @Summary  Current state of a battle
// @Tags     battles
// @Produce  json
// @Param    battleID  path      string  true  "Battle ID"
// @Success  200       {object}  services.BattleView
// @Failure  404       {object}  map[string]string
// @Router   /battles/{battleID} [get]
func (h *BattleHandler) GetBattle(w http.ResponseWriter, r *http.Request) {
	view, err := h.battleService.GetBattle(r.Context(), chi.URLParam(r, "battleID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"battle": view}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Vote godoc
// @Summary      Vote for the winner of the current match
// @Description  The winner stays in its slot, the loser is replaced by the next contender.
// @Tags         battles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        battleID  path      string               true  "Battle ID"
// @Param        vote      body      services.VoteInput  true  "Winning slot"
// @Success      200       {object}  services.BattleView
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Failure      429       {object}  map[string]string
// @Router       /battles/{battleID}/votes [post]
func (h *BattleHandler) Vote(w http.ResponseWriter, r *http.Request) {
	battleID, err := middleware.GetBattleIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify battle from token")
		return
	}

	var input services.VoteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Slot == "" {
		badRequestResponse(w, r, errors.New("slot is required"))
		return
	}

	view, err := h.battleService.Vote(r.Context(), battleID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"battle": view}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Restart godoc
// @Summary  Sample a new round from the battle's pool
// @Tags     battles
// @Produce  json
// @Security BearerAuth
// @Param    battleID  path      string  true  "Battle ID"
// @Success  200       {object}  services.BattleView
// @Failure  404       {object}  map[string]string
// @Router   /battles/{battleID}/restart [post]
func (h *BattleHandler) Restart(w http.ResponseWriter, r *http.Request) {
	battleID, err := middleware.GetBattleIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify battle from token")
		return
	}

	view, err := h.battleService.Restart(r.Context(), battleID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"battle": view}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BattleHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"status":         "ok",
		"active_battles": h.battleService.Count(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
