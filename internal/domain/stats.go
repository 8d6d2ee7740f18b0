package domain

// LeaderboardEntry is one row of the harvest leaderboard.
type LeaderboardEntry struct {
	Address      Address `json:"address"`
	HarvestCount uint64  `json:"harvest_count"`
}

// GlobalStats aggregates deployment-wide activity for the stats endpoint.
type GlobalStats struct {
	Accounts      uint64 `json:"accounts"`
	TotalHarvests uint64 `json:"total_harvests"`
	PodsGrowing   uint64 `json:"pods_growing"`
	PodsReady     uint64 `json:"pods_ready"`
}
