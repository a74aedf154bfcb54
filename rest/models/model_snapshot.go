package models

// SnapshotAdd takes a snapshot of a table in the given cluster
type SnapshotAdd struct {
	// Cluster id within the configured instance.
	Cluster string `json:"cluster" validate:"required"`

	SnapshotID string `json:"snapshotId" validate:"required"`

	// TTL is a duration such as "24h". The snapshot is deleted once it elapses;
	// empty means the server default.
	TTL string `json:"ttl,omitempty" validate:"omitempty,duration"`

	Description string `json:"description,omitempty"`
}

// SnapshotRestore creates a new table from a snapshot
type SnapshotRestore struct {
	TableID string `json:"tableId" validate:"required,max=50,tableid"`
}
