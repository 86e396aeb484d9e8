package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ItemRecord is a calibrated item stored in the shared bank.
type ItemRecord struct {
	ent.Schema
}

func (ItemRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").
			Unique().
			NotEmpty().
			Comment("Item bank identifier"),
		field.String("domain").
			NotEmpty().
			Comment("Content domain tag"),
		field.Float("discrimination").
			Comment("2PL discrimination parameter"),
		field.Float("difficulty").
			Comment("2PL difficulty parameter"),
		field.Bool("active").
			Default(true).
			Comment("Inactive items are excluded from selection"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (ItemRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("domain"),
		index.Fields("active"),
	}
}
