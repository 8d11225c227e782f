package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/movie-battle/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: ls,
	}
}

// GetChampions godoc
// @Summary  Most crowned movies
// @Tags     champions
// @Produce  json
// @Param    limit  query     int  false  "Number of standings (1-100)"
// @Success  200    {object}  services.LeaderboardOverview
// @Router   /champions [get]
func (h *LeaderboardHandler) GetChampions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid limit: %q", raw))
			return
		}
		limit = n
	}

	overview, err := h.leaderboardService.Overview(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"leaderboard": overview}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
