package store

import (
	"context"
	"fmt"

	"github.com/gioe/quotient/ent/responseevent"
)

func (r *eventRepo) AppendResponseEvent(ctx context.Context, data ResponseEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.ResponseEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetExamineeID(data.ExamineeID).
		SetItemID(data.ItemID).
		SetDomain(data.Domain).
		SetDiscrimination(data.Discrimination).
		SetDifficulty(data.Difficulty).
		SetCorrect(data.Correct).
		SetThetaAfter(data.ThetaAfter).
		SetSeAfter(data.SEAfter).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save response event: %w", err)
	}
	return nil
}

func (r *eventRepo) ItemsSeen(ctx context.Context, examineeID string) (map[string]bool, error) {
	events, err := r.client.ResponseEvent.Query().
		Where(responseevent.ExamineeID(examineeID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items seen: %w", err)
	}

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		seen[e.ItemID] = true
	}
	return seen, nil
}

func (r *eventRepo) ExposureCounts(ctx context.Context) (map[string]int, error) {
	events, err := r.client.ResponseEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query exposure counts: %w", err)
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.ItemID]++
	}
	return counts, nil
}
