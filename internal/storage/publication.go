package storage

import "time"

// Publication is one tracked article in the publist table
type Publication struct {
	ID          int64  // SQLite rowid, assigned on insert
	Author      string // mention id, e.g. U123
	URL         string
	PublishedAt time.Time // ingestion time, stored as unix seconds in pub
}
