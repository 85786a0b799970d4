package model

import "time"

// Snapshot is an already-fetched account record with its recent content.
// Followings lists the handles the account follows, when known.
type Snapshot struct {
	Account    AccountMetrics `json:"account"`
	Items      []ContentItem  `json:"items,omitempty"`
	Followings []string       `json:"followings,omitempty"`
	FetchedAt  time.Time      `json:"fetchedAt,omitempty"`
}
