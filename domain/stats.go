package domain

// TransferStats is a snapshot of the upload queue counters.
type TransferStats struct {
	Active    int
	Queued    int
	Capacity  int
	Completed int
	Failed    int
}

type ServerStats struct {
	Online    int
	Rooms     int
	Transfers TransferStats
}
