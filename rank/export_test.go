package rank

// Test bridge: expose the private ranking kernels to rank_test without
// widening the production API. The _test.go suffix keeps this file out
// of production builds.
var (
	// ExportedRankOnce exposes one ranking pass for white-box tests
	// that inject synthetic statistic sets.
	ExportedRankOnce = rankOnce

	// ExportedCompetitionRanks exposes the 1224-style rank kernel.
	ExportedCompetitionRanks = competitionRanks
)
