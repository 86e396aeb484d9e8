package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:  "sess-1",
		ExamineeID: "ex-1",
		Action:     ActionStart,
	})
	if err != nil {
		t.Fatalf("append start: %v", err)
	}

	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:  "sess-1",
		ExamineeID: "ex-1",
		Action:     ActionEnd,
		ItemsGiven: 15,
		Correct:    9,
		Theta:      0.42,
		SE:         0.28,
		Score:      106,
		StopReason: "se_threshold",
	})
	if err != nil {
		t.Fatalf("append end: %v", err)
	}

	records, err := repo.RecentSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d session records, want 1 (start events excluded)", len(records))
	}

	rec := records[0]
	if rec.SessionID != "sess-1" || rec.ExamineeID != "ex-1" {
		t.Errorf("record ids = (%q, %q), want (sess-1, ex-1)", rec.SessionID, rec.ExamineeID)
	}
	if rec.ItemsGiven != 15 || rec.Correct != 9 {
		t.Errorf("counts = (%d, %d), want (15, 9)", rec.ItemsGiven, rec.Correct)
	}
	if rec.Theta != 0.42 || rec.SE != 0.28 || rec.Score != 106 {
		t.Errorf("estimates = (%v, %v, %d), want (0.42, 0.28, 106)", rec.Theta, rec.SE, rec.Score)
	}
	if rec.StopReason != "se_threshold" {
		t.Errorf("stop reason = %q, want se_threshold", rec.StopReason)
	}
}

func TestRecentSessionsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:  "sess-" + string(rune('a'+i)),
			ExamineeID: "ex-1",
			Action:     ActionEnd,
			Score:      100 + i,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := repo.RecentSessions(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].Score != 103 || records[1].Score != 102 {
		t.Errorf("scores = (%d, %d), want (103, 102)", records[0].Score, records[1].Score)
	}
	if records[0].Sequence <= records[1].Sequence {
		t.Errorf("sequences not descending: %d then %d", records[0].Sequence, records[1].Sequence)
	}
}

func TestRecentSessionsExamineeFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Interleave two examinees so ex-1's sessions are not the newest rows.
	for i := 0; i < 3; i++ {
		for _, ex := range []string{"ex-1", "ex-2"} {
			err := repo.AppendSessionEvent(ctx, SessionEventData{
				SessionID:  fmt.Sprintf("%s-s%d", ex, i),
				ExamineeID: ex,
				Action:     ActionEnd,
				Score:      100 + i,
			})
			if err != nil {
				t.Fatalf("append %s %d: %v", ex, i, err)
			}
		}
	}

	// The filter applies before the limit: all 3 of ex-1's sessions come
	// back even though the 3 newest rows overall include ex-2's.
	records, err := repo.RecentSessions(ctx, QueryOpts{Limit: 3, Examinee: "ex-1"})
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for _, r := range records {
		if r.ExamineeID != "ex-1" {
			t.Errorf("record examinee = %q, want ex-1", r.ExamineeID)
		}
	}
	if records[0].Score != 102 {
		t.Errorf("newest score = %d, want 102", records[0].Score)
	}
}

func TestPriorEstimates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// No history yet.
	estimates, err := repo.PriorEstimates(ctx, "ex-1")
	if err != nil {
		t.Fatalf("prior estimates (empty): %v", err)
	}
	if len(estimates) != 0 {
		t.Fatalf("got %d estimates, want 0", len(estimates))
	}

	ends := []SessionEventData{
		{SessionID: "s1", ExamineeID: "ex-1", Action: ActionEnd, Theta: -0.5, SE: 0.4},
		{SessionID: "s2", ExamineeID: "ex-1", Action: ActionEnd, Theta: 0.1, SE: 0.3},
		{SessionID: "s3", ExamineeID: "ex-2", Action: ActionEnd, Theta: 2.0, SE: 0.3},
		// Start events and zero-SE rows must be excluded.
		{SessionID: "s4", ExamineeID: "ex-1", Action: ActionStart},
	}
	for i, e := range ends {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	estimates, err = repo.PriorEstimates(ctx, "ex-1")
	if err != nil {
		t.Fatalf("prior estimates: %v", err)
	}
	if len(estimates) != 2 {
		t.Fatalf("got %d estimates, want 2", len(estimates))
	}
	// Oldest first.
	if estimates[0].Theta != -0.5 || estimates[1].Theta != 0.1 {
		t.Errorf("thetas = (%v, %v), want (-0.5, 0.1)", estimates[0].Theta, estimates[1].Theta)
	}
}

func TestResponseEventsAndItemsSeen(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	responses := []ResponseEventData{
		{SessionID: "s1", ExamineeID: "ex-1", ItemID: "pr-001", Domain: "pattern_reasoning", Discrimination: 1.2, Difficulty: 0.5, Correct: true, ThetaAfter: 0.3, SEAfter: 0.8},
		{SessionID: "s1", ExamineeID: "ex-1", ItemID: "vm-002", Domain: "visuospatial", Correct: false, ThetaAfter: 0.1, SEAfter: 0.7},
		{SessionID: "s2", ExamineeID: "ex-1", ItemID: "pr-001", Domain: "pattern_reasoning", Correct: true, ThetaAfter: 0.5, SEAfter: 0.6},
		{SessionID: "s3", ExamineeID: "ex-2", ItemID: "wm-003", Domain: "working_memory", Correct: true, ThetaAfter: 1.0, SEAfter: 0.9},
	}
	for i, r := range responses {
		if err := repo.AppendResponseEvent(ctx, r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	seen, err := repo.ItemsSeen(ctx, "ex-1")
	if err != nil {
		t.Fatalf("items seen: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("got %d seen items, want 2", len(seen))
	}
	if !seen["pr-001"] || !seen["vm-002"] {
		t.Errorf("seen = %v, want pr-001 and vm-002", seen)
	}
	if seen["wm-003"] {
		t.Error("wm-003 belongs to another examinee, should not be seen")
	}

	counts, err := repo.ExposureCounts(ctx)
	if err != nil {
		t.Fatalf("exposure counts: %v", err)
	}
	if counts["pr-001"] != 2 {
		t.Errorf("pr-001 exposure = %d, want 2", counts["pr-001"])
	}
	if counts["vm-002"] != 1 || counts["wm-003"] != 1 {
		t.Errorf("counts = %v, want vm-002:1 wm-003:1", counts)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, "sess-1")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		SessionID: "sess-1",
		Data: SnapshotData{
			Version: 1,
			State:   map[string]any{"theta": 0.5},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx, "sess-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Version != 1 {
		t.Errorf("data.version = %d, want 1", snap.Data.Version)
	}
	if got := snap.Data.State["theta"]; got != 0.5 {
		t.Errorf("state theta = %v, want 0.5", got)
	}

	// A different session sees nothing.
	other, err := repo.Latest(ctx, "sess-2")
	if err != nil {
		t.Fatalf("latest (other): %v", err)
	}
	if other != nil {
		t.Fatal("expected nil snapshot for unrelated session")
	}
}

func TestSnapshotRoundTripsSessionState(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	sess := &session.Session{
		ExamineeID:   "ex-1",
		SessionID:    "sess-1",
		Status:       session.StatusActive,
		Theta:        0.42,
		SE:           0.55,
		Administered: []string{"pr-001", "vm-001"},
		Coverage:     map[string]int{"pattern_reasoning": 1, "visuospatial": 1},
		Trajectory:   []float64{0.3, 0.42},
		SETrajectory: []float64{0.8, 0.55},
		CorrectCount: 1,
	}
	state, err := sess.StateMap()
	if err != nil {
		t.Fatalf("state map: %v", err)
	}

	err = repo.Save(ctx, &Snapshot{
		Sequence:  int64(len(sess.Administered)),
		Timestamp: time.Now().UTC(),
		SessionID: sess.SessionID,
		Data:      SnapshotData{Version: 1, State: state},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := repo.Latest(ctx, "sess-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	restored, err := session.FromStateMap(snap.Data.State)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.SessionID != "sess-1" || restored.ExamineeID != "ex-1" {
		t.Errorf("ids = (%q, %q), want (sess-1, ex-1)", restored.SessionID, restored.ExamineeID)
	}
	if restored.Theta != 0.42 || restored.SE != 0.55 {
		t.Errorf("estimate = (%v, %v), want (0.42, 0.55)", restored.Theta, restored.SE)
	}
	if len(restored.Administered) != 2 || restored.Administered[0] != "pr-001" {
		t.Errorf("administered = %v, want [pr-001 vm-001]", restored.Administered)
	}
	if restored.Coverage["pattern_reasoning"] != 1 {
		t.Errorf("coverage = %v, want pattern_reasoning:1", restored.Coverage)
	}
	if len(restored.SETrajectory) != 2 {
		t.Errorf("se trajectory = %v, want 2 entries", restored.SETrajectory)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			SessionID: "sess-1",
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, "sess-1", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx, "sess-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestItemRepoUpsertAndPool(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	items := []itembank.Calibrated{
		{ItemID: "pr-001", A: 1.2, B: -0.5, Tag: "pattern_reasoning"},
		{ItemID: "vm-001", A: 0.9, B: 0.8, Tag: "visuospatial"},
	}
	if err := repo.Upsert(ctx, items); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	pool, err := repo.ActivePool(ctx)
	if err != nil {
		t.Fatalf("active pool: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("pool size = %d, want 2", len(pool))
	}
	// Sorted by item_id.
	if pool[0].ItemID != "pr-001" || pool[1].ItemID != "vm-001" {
		t.Errorf("pool order = (%s, %s), want (pr-001, vm-001)", pool[0].ItemID, pool[1].ItemID)
	}

	// Recalibrate one item; the pool must reflect the new parameters
	// without duplicating the row.
	if err := repo.Upsert(ctx, []itembank.Calibrated{{ItemID: "pr-001", A: 1.5, B: -0.3, Tag: "pattern_reasoning"}}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	pool, err = repo.ActivePool(ctx)
	if err != nil {
		t.Fatalf("active pool after upsert: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("pool size after upsert = %d, want 2", len(pool))
	}
	if pool[0].A != 1.5 || pool[0].B != -0.3 {
		t.Errorf("recalibrated params = (%v, %v), want (1.5, -0.3)", pool[0].A, pool[0].B)
	}

	if err := repo.Deactivate(ctx, "vm-001"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	pool, err = repo.ActivePool(ctx)
	if err != nil {
		t.Fatalf("active pool after deactivate: %v", err)
	}
	if len(pool) != 1 || pool[0].ItemID != "pr-001" {
		t.Errorf("pool after deactivate = %v, want only pr-001", pool)
	}

	if err := repo.Deactivate(ctx, "missing"); err == nil {
		t.Error("expected error deactivating unknown item")
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"snapshots", "session_events", "response_events", "item_records"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
			continue
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}
