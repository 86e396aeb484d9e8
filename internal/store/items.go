package store

import (
	"context"
	"fmt"

	"github.com/gioe/quotient/ent"
	"github.com/gioe/quotient/ent/itemrecord"
	"github.com/gioe/quotient/internal/itembank"
)

// itemRepo implements ItemRepo using the ent client.
type itemRepo struct {
	client *ent.Client
}

func (r *itemRepo) Upsert(ctx context.Context, items []itembank.Calibrated) error {
	for _, it := range items {
		n, err := r.client.ItemRecord.Update().
			Where(itemrecord.ItemID(it.ItemID)).
			SetDomain(it.Tag).
			SetDiscrimination(it.A).
			SetDifficulty(it.B).
			Save(ctx)
		if err != nil {
			return fmt.Errorf("update item %s: %w", it.ItemID, err)
		}
		if n > 0 {
			continue
		}
		_, err = r.client.ItemRecord.Create().
			SetItemID(it.ItemID).
			SetDomain(it.Tag).
			SetDiscrimination(it.A).
			SetDifficulty(it.B).
			Save(ctx)
		if err != nil {
			return fmt.Errorf("create item %s: %w", it.ItemID, err)
		}
	}
	return nil
}

func (r *itemRepo) ActivePool(ctx context.Context) ([]itembank.Calibrated, error) {
	records, err := r.client.ItemRecord.Query().
		Where(itemrecord.Active(true)).
		Order(ent.Asc(itemrecord.FieldItemID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query active items: %w", err)
	}

	items := make([]itembank.Calibrated, 0, len(records))
	for _, rec := range records {
		items = append(items, itembank.Calibrated{
			ItemID: rec.ItemID,
			A:      rec.Discrimination,
			B:      rec.Difficulty,
			Tag:    rec.Domain,
		})
	}
	return items, nil
}

func (r *itemRepo) Deactivate(ctx context.Context, itemID string) error {
	n, err := r.client.ItemRecord.Update().
		Where(itemrecord.ItemID(itemID)).
		SetActive(false).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deactivate item: %s not found", itemID)
	}
	return nil
}
