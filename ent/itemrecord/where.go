// Code generated by ent, DO NOT EDIT.

package itemrecord

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/gioe/quotient/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLTE(FieldID, id))
}

// ItemID applies equality check predicate on the "item_id" field. It's identical to ItemIDEQ.
func ItemID(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldItemID, v))
}

// Domain applies equality check predicate on the "domain" field. It's identical to DomainEQ.
func Domain(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldDomain, v))
}

// Discrimination applies equality check predicate on the "discrimination" field. It's identical to DiscriminationEQ.
func Discrimination(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldDiscrimination, v))
}

// Difficulty applies equality check predicate on the "difficulty" field. It's identical to DifficultyEQ.
func Difficulty(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldDifficulty, v))
}

// Active applies equality check predicate on the "active" field. It's identical to ActiveEQ.
func Active(v bool) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldActive, v))
}

// UpdatedAt applies equality check predicate on the "updated_at" field. It's identical to UpdatedAtEQ.
func UpdatedAt(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldUpdatedAt, v))
}

// ItemIDEQ applies the EQ predicate on the "item_id" field.
func ItemIDEQ(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldItemID, v))
}

// ItemIDNEQ applies the NEQ predicate on the "item_id" field.
func ItemIDNEQ(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldItemID, v))
}

// ItemIDIn applies the In predicate on the "item_id" field.
func ItemIDIn(vs ...string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldIn(FieldItemID, vs...))
}

// ItemIDNotIn applies the NotIn predicate on the "item_id" field.
func ItemIDNotIn(vs ...string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNotIn(FieldItemID, vs...))
}

// ItemIDGT applies the GT predicate on the "item_id" field.
func ItemIDGT(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGT(FieldItemID, v))
}

// ItemIDGTE applies the GTE predicate on the "item_id" field.
func ItemIDGTE(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGTE(FieldItemID, v))
}

// ItemIDLT applies the LT predicate on the "item_id" field.
func ItemIDLT(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLT(FieldItemID, v))
}

// ItemIDLTE applies the LTE predicate on the "item_id" field.
func ItemIDLTE(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLTE(FieldItemID, v))
}

// ItemIDContains applies the Contains predicate on the "item_id" field.
func ItemIDContains(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldContains(FieldItemID, v))
}

// ItemIDHasPrefix applies the HasPrefix predicate on the "item_id" field.
func ItemIDHasPrefix(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldHasPrefix(FieldItemID, v))
}

// ItemIDHasSuffix applies the HasSuffix predicate on the "item_id" field.
func ItemIDHasSuffix(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldHasSuffix(FieldItemID, v))
}

// ItemIDEqualFold applies the EqualFold predicate on the "item_id" field.
func ItemIDEqualFold(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEqualFold(FieldItemID, v))
}

// ItemIDContainsFold applies the ContainsFold predicate on the "item_id" field.
func ItemIDContainsFold(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldContainsFold(FieldItemID, v))
}

// DomainEQ applies the EQ predicate on the "domain" field.
func DomainEQ(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldDomain, v))
}

// DomainNEQ applies the NEQ predicate on the "domain" field.
func DomainNEQ(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldDomain, v))
}

// DomainIn applies the In predicate on the "domain" field.
func DomainIn(vs ...string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldIn(FieldDomain, vs...))
}

// DomainNotIn applies the NotIn predicate on the "domain" field.
func DomainNotIn(vs ...string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNotIn(FieldDomain, vs...))
}

// DomainGT applies the GT predicate on the "domain" field.
func DomainGT(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGT(FieldDomain, v))
}

// DomainGTE applies the GTE predicate on the "domain" field.
func DomainGTE(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGTE(FieldDomain, v))
}

// DomainLT applies the LT predicate on the "domain" field.
func DomainLT(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLT(FieldDomain, v))
}

// DomainLTE applies the LTE predicate on the "domain" field.
func DomainLTE(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLTE(FieldDomain, v))
}

// DomainContains applies the Contains predicate on the "domain" field.
func DomainContains(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldContains(FieldDomain, v))
}

// DomainHasPrefix applies the HasPrefix predicate on the "domain" field.
func DomainHasPrefix(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldHasPrefix(FieldDomain, v))
}

// DomainHasSuffix applies the HasSuffix predicate on the "domain" field.
func DomainHasSuffix(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldHasSuffix(FieldDomain, v))
}

// DomainEqualFold applies the EqualFold predicate on the "domain" field.
func DomainEqualFold(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEqualFold(FieldDomain, v))
}

// DomainContainsFold applies the ContainsFold predicate on the "domain" field.
func DomainContainsFold(v string) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldContainsFold(FieldDomain, v))
}

// DiscriminationEQ applies the EQ predicate on the "discrimination" field.
func DiscriminationEQ(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldDiscrimination, v))
}

// DiscriminationNEQ applies the NEQ predicate on the "discrimination" field.
func DiscriminationNEQ(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldDiscrimination, v))
}

// DiscriminationIn applies the In predicate on the "discrimination" field.
func DiscriminationIn(vs ...float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldIn(FieldDiscrimination, vs...))
}

// DiscriminationNotIn applies the NotIn predicate on the "discrimination" field.
func DiscriminationNotIn(vs ...float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNotIn(FieldDiscrimination, vs...))
}

// DiscriminationGT applies the GT predicate on the "discrimination" field.
func DiscriminationGT(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGT(FieldDiscrimination, v))
}

// DiscriminationGTE applies the GTE predicate on the "discrimination" field.
func DiscriminationGTE(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGTE(FieldDiscrimination, v))
}

// DiscriminationLT applies the LT predicate on the "discrimination" field.
func DiscriminationLT(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLT(FieldDiscrimination, v))
}

// DiscriminationLTE applies the LTE predicate on the "discrimination" field.
func DiscriminationLTE(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLTE(FieldDiscrimination, v))
}

// DifficultyEQ applies the EQ predicate on the "difficulty" field.
func DifficultyEQ(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldDifficulty, v))
}

// DifficultyNEQ applies the NEQ predicate on the "difficulty" field.
func DifficultyNEQ(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldDifficulty, v))
}

// DifficultyIn applies the In predicate on the "difficulty" field.
func DifficultyIn(vs ...float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldIn(FieldDifficulty, vs...))
}

// DifficultyNotIn applies the NotIn predicate on the "difficulty" field.
func DifficultyNotIn(vs ...float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNotIn(FieldDifficulty, vs...))
}

// DifficultyGT applies the GT predicate on the "difficulty" field.
func DifficultyGT(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGT(FieldDifficulty, v))
}

// DifficultyGTE applies the GTE predicate on the "difficulty" field.
func DifficultyGTE(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGTE(FieldDifficulty, v))
}

// DifficultyLT applies the LT predicate on the "difficulty" field.
func DifficultyLT(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLT(FieldDifficulty, v))
}

// DifficultyLTE applies the LTE predicate on the "difficulty" field.
func DifficultyLTE(v float64) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLTE(FieldDifficulty, v))
}

// ActiveEQ applies the EQ predicate on the "active" field.
func ActiveEQ(v bool) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldActive, v))
}

// ActiveNEQ applies the NEQ predicate on the "active" field.
func ActiveNEQ(v bool) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldActive, v))
}

// UpdatedAtEQ applies the EQ predicate on the "updated_at" field.
func UpdatedAtEQ(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldEQ(FieldUpdatedAt, v))
}

// UpdatedAtNEQ applies the NEQ predicate on the "updated_at" field.
func UpdatedAtNEQ(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNEQ(FieldUpdatedAt, v))
}

// UpdatedAtIn applies the In predicate on the "updated_at" field.
func UpdatedAtIn(vs ...time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldIn(FieldUpdatedAt, vs...))
}

// UpdatedAtNotIn applies the NotIn predicate on the "updated_at" field.
func UpdatedAtNotIn(vs ...time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldNotIn(FieldUpdatedAt, vs...))
}

// UpdatedAtGT applies the GT predicate on the "updated_at" field.
func UpdatedAtGT(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGT(FieldUpdatedAt, v))
}

// UpdatedAtGTE applies the GTE predicate on the "updated_at" field.
func UpdatedAtGTE(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldGTE(FieldUpdatedAt, v))
}

// UpdatedAtLT applies the LT predicate on the "updated_at" field.
func UpdatedAtLT(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLT(FieldUpdatedAt, v))
}

// UpdatedAtLTE applies the LTE predicate on the "updated_at" field.
func UpdatedAtLTE(v time.Time) predicate.ItemRecord {
	return predicate.ItemRecord(sql.FieldLTE(FieldUpdatedAt, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.ItemRecord) predicate.ItemRecord {
	return predicate.ItemRecord(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.ItemRecord) predicate.ItemRecord {
	return predicate.ItemRecord(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.ItemRecord) predicate.ItemRecord {
	return predicate.ItemRecord(sql.NotPredicates(p))
}
