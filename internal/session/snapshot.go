package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StateMap serializes the session into the generic map form the snapshot
// store persists. FromStateMap inverts it.
func (s *Session) StateMap() (map[string]any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal session map: %w", err)
	}
	return m, nil
}

// FromStateMap reconstructs a session from a stored snapshot state.
func FromStateMap(state map[string]any) (*Session, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot state: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if sess.SessionID == "" {
		return nil, errors.New("snapshot state has no session id")
	}
	if sess.Coverage == nil {
		sess.Coverage = make(map[string]int)
	}
	return &sess, nil
}
