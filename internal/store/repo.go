package store

import (
	"context"
	"time"

	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
)

// Session lifecycle actions recorded in SessionEvent rows.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Examinee string    // restrict to one examinee ("" = all)
}

// SnapshotData captures the full session state at a point in time.
// The session package serializes its Session value into State.
type SnapshotData struct {
	Version int            `json:"version"`
	State   map[string]any `json:"state"`
}

// Snapshot represents a point-in-time capture of session state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Data      SnapshotData
}

// SnapshotRepo manages session state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot for a session, or nil if
	// none exist.
	Latest(ctx context.Context, sessionID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots for a session.
	Prune(ctx context.Context, sessionID string, keep int) error
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID  string
	ExamineeID string
	Action     string
	ItemsGiven int
	Correct    int
	Theta      float64
	SE         float64
	Score      int
	StopReason string
}

// ResponseEventData captures a single scored item response.
type ResponseEventData struct {
	SessionID      string
	ExamineeID     string
	ItemID         string
	Domain         string
	Discrimination float64
	Difficulty     float64
	Correct        bool
	ThetaAfter     float64
	SEAfter        float64
}

// SessionRecord is a completed session summary reconstructed from
// end-of-session events.
type SessionRecord struct {
	Sequence   int64
	Timestamp  time.Time
	SessionID  string
	ExamineeID string
	ItemsGiven int
	Correct    int
	Theta      float64
	SE         float64
	Score      int
	StopReason string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendResponseEvent records a scored item response.
	AppendResponseEvent(ctx context.Context, data ResponseEventData) error

	// ItemsSeen returns the set of item IDs an examinee has been
	// administered across all sessions.
	ItemsSeen(ctx context.Context, examineeID string) (map[string]bool, error)

	// PriorEstimates returns final ability estimates from the examinee's
	// completed sessions, oldest first.
	PriorEstimates(ctx context.Context, examineeID string) ([]irt.Estimate, error)

	// RecentSessions returns completed session summaries, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// ExposureCounts returns per-item administration counts across all
	// recorded responses.
	ExposureCounts(ctx context.Context) (map[string]int, error)
}

// ItemRepo manages the persisted item bank.
type ItemRepo interface {
	// Upsert inserts or updates calibrated items by item_id.
	Upsert(ctx context.Context, items []itembank.Calibrated) error

	// ActivePool returns all active items as a selection pool.
	ActivePool(ctx context.Context) ([]itembank.Calibrated, error)

	// Deactivate marks an item inactive so selection skips it.
	Deactivate(ctx context.Context, itemID string) error
}
