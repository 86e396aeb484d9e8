package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ResponseEvent records a single scored item response within a session.
type ResponseEvent struct {
	ent.Schema
}

func (ResponseEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ResponseEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("examinee_id").
			NotEmpty().
			Comment("Examinee who answered"),
		field.String("item_id").
			NotEmpty().
			Comment("Item bank identifier"),
		field.String("domain").
			NotEmpty().
			Comment("Content domain tag of the item"),
		field.Float("discrimination").
			Comment("Item discrimination at administration time"),
		field.Float("difficulty").
			Comment("Item difficulty at administration time"),
		field.Bool("correct").
			Comment("Whether the response was correct"),
		field.Float("theta_after").
			Comment("Ability estimate after scoring this response"),
		field.Float("se_after").
			Comment("Standard error after scoring this response"),
	}
}

func (ResponseEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("examinee_id"),
		index.Fields("item_id"),
		index.Fields("correct"),
	}
}
