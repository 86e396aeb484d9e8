package session

import (
	"testing"
)

func TestStateMapRoundTrip(t *testing.T) {
	e := defaultEngine(t)
	sess, err := e.Initialize("ex-1", "sess-1", nil)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	for i := 0; i < 6; i++ {
		if _, err := e.ProcessResponse(sess, centeredItem(i), i%2 == 0); err != nil {
			t.Fatalf("ProcessResponse(%d) error = %v", i, err)
		}
	}

	state, err := sess.StateMap()
	if err != nil {
		t.Fatalf("StateMap() error = %v", err)
	}
	restored, err := FromStateMap(state)
	if err != nil {
		t.Fatalf("FromStateMap() error = %v", err)
	}

	if restored.SessionID != "sess-1" || restored.ExamineeID != "ex-1" {
		t.Errorf("ids = (%q, %q), want (sess-1, ex-1)", restored.SessionID, restored.ExamineeID)
	}
	if restored.Status != StatusActive {
		t.Errorf("Status = %q, want active", restored.Status)
	}
	if restored.Theta != sess.Theta || restored.SE != sess.SE {
		t.Errorf("estimate = (%v, %v), want (%v, %v)", restored.Theta, restored.SE, sess.Theta, sess.SE)
	}
	if got := len(restored.Administered); got != 6 {
		t.Fatalf("Administered = %d items, want 6", got)
	}
	if got := len(restored.Responses); got != 6 {
		t.Errorf("Responses = %d, want 6", got)
	}
	if got := len(restored.Trajectory); got != 6 {
		t.Errorf("Trajectory length = %d, want 6", got)
	}
	if got := len(restored.SETrajectory); got != 6 {
		t.Errorf("SETrajectory length = %d, want 6", got)
	}
	if restored.CorrectCount != sess.CorrectCount {
		t.Errorf("CorrectCount = %d, want %d", restored.CorrectCount, sess.CorrectCount)
	}
	covSum := 0
	for _, n := range restored.Coverage {
		covSum += n
	}
	if covSum != 6 {
		t.Errorf("coverage sum = %d, want 6", covSum)
	}
}

func TestFromStateMap_ResumedSessionContinues(t *testing.T) {
	e := defaultEngine(t)
	sess, err := e.Initialize("ex-1", "sess-1", nil)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := e.ProcessResponse(sess, centeredItem(i), true); err != nil {
			t.Fatalf("ProcessResponse(%d) error = %v", i, err)
		}
	}

	state, err := sess.StateMap()
	if err != nil {
		t.Fatalf("StateMap() error = %v", err)
	}
	restored, err := FromStateMap(state)
	if err != nil {
		t.Fatalf("FromStateMap() error = %v", err)
	}

	// The restored session keeps estimating over the full history: the
	// next step sees all five responses.
	step, err := e.ProcessResponse(restored, centeredItem(4), true)
	if err != nil {
		t.Fatalf("ProcessResponse(resumed) error = %v", err)
	}
	if step.ItemsGiven != 5 {
		t.Errorf("ItemsGiven = %d, want 5", step.ItemsGiven)
	}
	if step.CorrectCount != 5 {
		t.Errorf("CorrectCount = %d, want 5", step.CorrectCount)
	}
	if step.Theta <= sess.Theta {
		t.Errorf("Theta after another correct = %v, want > %v", step.Theta, sess.Theta)
	}

	// The restored session must also exclude its own administered items.
	if _, err := e.ProcessResponse(restored, centeredItem(0), true); err == nil {
		t.Error("expected error re-administering an item from before the restore")
	}
}

func TestFromStateMap_RejectsEmptyState(t *testing.T) {
	if _, err := FromStateMap(map[string]any{}); err == nil {
		t.Error("expected error for state without a session id")
	}
}
