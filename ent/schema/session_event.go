package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records test session lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("examinee_id").
			NotEmpty().
			Comment("Examinee the session belongs to"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.Int("items_given").
			Default(0).
			Comment("Total items administered (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on end only)"),
		field.Float("theta").
			Default(0).
			Comment("Final ability estimate (on end only)"),
		field.Float("se").
			Default(0).
			Comment("Final standard error (on end only)"),
		field.Int("score").
			Default(0).
			Comment("Scaled score (on end only)"),
		field.String("stop_reason").
			Optional().
			Comment("Why the session ended (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("examinee_id"),
		index.Fields("action"),
	}
}
