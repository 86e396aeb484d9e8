package store

import (
	"context"
	"fmt"

	"github.com/gioe/quotient/ent"
	"github.com/gioe/quotient/ent/sessionevent"
	"github.com/gioe/quotient/internal/irt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetExamineeID(data.ExamineeID).
		SetAction(data.Action).
		SetItemsGiven(data.ItemsGiven).
		SetCorrectAnswers(data.Correct).
		SetTheta(data.Theta).
		SetSe(data.SE).
		SetScore(data.Score)

	if data.StopReason != "" {
		builder = builder.SetStopReason(data.StopReason)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) PriorEstimates(ctx context.Context, examineeID string) ([]irt.Estimate, error) {
	events, err := r.client.SessionEvent.Query().
		Where(
			sessionevent.ExamineeID(examineeID),
			sessionevent.Action(ActionEnd),
		).
		Order(ent.Asc(sessionevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query prior estimates: %w", err)
	}

	var estimates []irt.Estimate
	for _, e := range events {
		if e.Se <= 0 {
			continue
		}
		estimates = append(estimates, irt.Estimate{Theta: e.Theta, SE: e.Se})
	}
	return estimates, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	q := r.client.SessionEvent.Query().
		Where(sessionevent.Action(ActionEnd)).
		Order(ent.Desc(sessionevent.FieldSequence))

	if opts.Examinee != "" {
		q = q.Where(sessionevent.ExamineeID(opts.Examinee))
	}
	if opts.After > 0 {
		q = q.Where(sessionevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(sessionevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(sessionevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(sessionevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}

	records := make([]SessionRecord, 0, len(events))
	for _, e := range events {
		records = append(records, SessionRecord{
			Sequence:   e.Sequence,
			Timestamp:  e.Timestamp,
			SessionID:  e.SessionID,
			ExamineeID: e.ExamineeID,
			ItemsGiven: e.ItemsGiven,
			Correct:    e.CorrectAnswers,
			Theta:      e.Theta,
			SE:         e.Se,
			Score:      e.Score,
			StopReason: e.StopReason,
		})
	}
	return records, nil
}
