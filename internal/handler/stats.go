package handler

import (
	"net/http"
	"strconv"

	"github.com/growpodempire/growpod/internal/repository"
)

const defaultLeaderboardLimit = 10

// LeaderboardResponse wraps the harvest leaderboard rows
type LeaderboardResponse struct {
	Entries []LeaderboardEntryView `json:"entries"`
}

// LeaderboardEntryView is one ranked leaderboard row
type LeaderboardEntryView struct {
	Rank         int    `json:"rank"`
	Address      string `json:"address"`
	HarvestCount uint64 `json:"harvest_count"`
}

// HandleGetLeaderboard returns the top harvesters
// @Summary Harvest leaderboard
// @Description Return accounts ranked by lifetime harvest count
// @Tags stats
// @Produce json
// @Param limit query int false "Maximum rows (default 10, max 100)"
// @Success 200 {object} LeaderboardResponse
// @Router /stats/leaderboard [get]
func HandleGetLeaderboard(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limitParam := GetOptionalQueryParam(r, "limit", strconv.Itoa(defaultLeaderboardLimit))
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 || limit > 100 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		entries, err := store.TopHarvesters(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}

		views := make([]LeaderboardEntryView, 0, len(entries))
		for i, e := range entries {
			views = append(views, LeaderboardEntryView{
				Rank:         i + 1,
				Address:      string(e.Address),
				HarvestCount: e.HarvestCount,
			})
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: views})
	}
}

// HandleGetGlobalStats returns deployment-wide activity counters
// @Summary Global stats
// @Description Return account, harvest, and pod activity totals
// @Tags stats
// @Produce json
// @Success 200 {object} domain.GlobalStats
// @Router /stats/global [get]
func HandleGetGlobalStats(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := store.GlobalStats(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get global stats", err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
