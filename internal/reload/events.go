package reload

import "time"

// SnapshotEvent announces a finished snapshot rebuild.
type SnapshotEvent struct {
	Type        string    `json:"type"` // "snapshot.updated"
	Total       int       `json:"total"`
	GeneratedAt string    `json:"generated_at"`
	At          time.Time `json:"at"`
}

func NewSnapshotEvent(total int, generatedAt string) SnapshotEvent {
	return SnapshotEvent{
		Type:        "snapshot.updated",
		Total:       total,
		GeneratedAt: generatedAt,
		At:          time.Now(),
	}
}
