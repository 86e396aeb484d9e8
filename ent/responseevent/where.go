// Code generated by ent, DO NOT EDIT.

package responseevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/gioe/quotient/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldTimestamp, v))
}

// SessionID applies equality check predicate on the "session_id" field. It's identical to SessionIDEQ.
func SessionID(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldSessionID, v))
}

// ExamineeID applies equality check predicate on the "examinee_id" field. It's identical to ExamineeIDEQ.
func ExamineeID(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldExamineeID, v))
}

// ItemID applies equality check predicate on the "item_id" field. It's identical to ItemIDEQ.
func ItemID(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldItemID, v))
}

// Domain applies equality check predicate on the "domain" field. It's identical to DomainEQ.
func Domain(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldDomain, v))
}

// Discrimination applies equality check predicate on the "discrimination" field. It's identical to DiscriminationEQ.
func Discrimination(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldDiscrimination, v))
}

// Difficulty applies equality check predicate on the "difficulty" field. It's identical to DifficultyEQ.
func Difficulty(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldDifficulty, v))
}

// Correct applies equality check predicate on the "correct" field. It's identical to CorrectEQ.
func Correct(v bool) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldCorrect, v))
}

// ThetaAfter applies equality check predicate on the "theta_after" field. It's identical to ThetaAfterEQ.
func ThetaAfter(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldThetaAfter, v))
}

// SeAfter applies equality check predicate on the "se_after" field. It's identical to SeAfterEQ.
func SeAfter(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldSeAfter, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldTimestamp, v))
}

// SessionIDEQ applies the EQ predicate on the "session_id" field.
func SessionIDEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldSessionID, v))
}

// SessionIDNEQ applies the NEQ predicate on the "session_id" field.
func SessionIDNEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldSessionID, v))
}

// SessionIDIn applies the In predicate on the "session_id" field.
func SessionIDIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldSessionID, vs...))
}

// SessionIDNotIn applies the NotIn predicate on the "session_id" field.
func SessionIDNotIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldSessionID, vs...))
}

// SessionIDGT applies the GT predicate on the "session_id" field.
func SessionIDGT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldSessionID, v))
}

// SessionIDGTE applies the GTE predicate on the "session_id" field.
func SessionIDGTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldSessionID, v))
}

// SessionIDLT applies the LT predicate on the "session_id" field.
func SessionIDLT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldSessionID, v))
}

// SessionIDLTE applies the LTE predicate on the "session_id" field.
func SessionIDLTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldSessionID, v))
}

// SessionIDContains applies the Contains predicate on the "session_id" field.
func SessionIDContains(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContains(FieldSessionID, v))
}

// SessionIDHasPrefix applies the HasPrefix predicate on the "session_id" field.
func SessionIDHasPrefix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasPrefix(FieldSessionID, v))
}

// SessionIDHasSuffix applies the HasSuffix predicate on the "session_id" field.
func SessionIDHasSuffix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasSuffix(FieldSessionID, v))
}

// SessionIDEqualFold applies the EqualFold predicate on the "session_id" field.
func SessionIDEqualFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEqualFold(FieldSessionID, v))
}

// SessionIDContainsFold applies the ContainsFold predicate on the "session_id" field.
func SessionIDContainsFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContainsFold(FieldSessionID, v))
}

// ExamineeIDEQ applies the EQ predicate on the "examinee_id" field.
func ExamineeIDEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldExamineeID, v))
}

// ExamineeIDNEQ applies the NEQ predicate on the "examinee_id" field.
func ExamineeIDNEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldExamineeID, v))
}

// ExamineeIDIn applies the In predicate on the "examinee_id" field.
func ExamineeIDIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldExamineeID, vs...))
}

// ExamineeIDNotIn applies the NotIn predicate on the "examinee_id" field.
func ExamineeIDNotIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldExamineeID, vs...))
}

// ExamineeIDGT applies the GT predicate on the "examinee_id" field.
func ExamineeIDGT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldExamineeID, v))
}

// ExamineeIDGTE applies the GTE predicate on the "examinee_id" field.
func ExamineeIDGTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldExamineeID, v))
}

// ExamineeIDLT applies the LT predicate on the "examinee_id" field.
func ExamineeIDLT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldExamineeID, v))
}

// ExamineeIDLTE applies the LTE predicate on the "examinee_id" field.
func ExamineeIDLTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldExamineeID, v))
}

// ExamineeIDContains applies the Contains predicate on the "examinee_id" field.
func ExamineeIDContains(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContains(FieldExamineeID, v))
}

// ExamineeIDHasPrefix applies the HasPrefix predicate on the "examinee_id" field.
func ExamineeIDHasPrefix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasPrefix(FieldExamineeID, v))
}

// ExamineeIDHasSuffix applies the HasSuffix predicate on the "examinee_id" field.
func ExamineeIDHasSuffix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasSuffix(FieldExamineeID, v))
}

// ExamineeIDEqualFold applies the EqualFold predicate on the "examinee_id" field.
func ExamineeIDEqualFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEqualFold(FieldExamineeID, v))
}

// ExamineeIDContainsFold applies the ContainsFold predicate on the "examinee_id" field.
func ExamineeIDContainsFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContainsFold(FieldExamineeID, v))
}

// ItemIDEQ applies the EQ predicate on the "item_id" field.
func ItemIDEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldItemID, v))
}

// ItemIDNEQ applies the NEQ predicate on the "item_id" field.
func ItemIDNEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldItemID, v))
}

// ItemIDIn applies the In predicate on the "item_id" field.
func ItemIDIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldItemID, vs...))
}

// ItemIDNotIn applies the NotIn predicate on the "item_id" field.
func ItemIDNotIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldItemID, vs...))
}

// ItemIDGT applies the GT predicate on the "item_id" field.
func ItemIDGT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldItemID, v))
}

// ItemIDGTE applies the GTE predicate on the "item_id" field.
func ItemIDGTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldItemID, v))
}

// ItemIDLT applies the LT predicate on the "item_id" field.
func ItemIDLT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldItemID, v))
}

// ItemIDLTE applies the LTE predicate on the "item_id" field.
func ItemIDLTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldItemID, v))
}

// ItemIDContains applies the Contains predicate on the "item_id" field.
func ItemIDContains(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContains(FieldItemID, v))
}

// ItemIDHasPrefix applies the HasPrefix predicate on the "item_id" field.
func ItemIDHasPrefix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasPrefix(FieldItemID, v))
}

// ItemIDHasSuffix applies the HasSuffix predicate on the "item_id" field.
func ItemIDHasSuffix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasSuffix(FieldItemID, v))
}

// ItemIDEqualFold applies the EqualFold predicate on the "item_id" field.
func ItemIDEqualFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEqualFold(FieldItemID, v))
}

// ItemIDContainsFold applies the ContainsFold predicate on the "item_id" field.
func ItemIDContainsFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContainsFold(FieldItemID, v))
}

// DomainEQ applies the EQ predicate on the "domain" field.
func DomainEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldDomain, v))
}

// DomainNEQ applies the NEQ predicate on the "domain" field.
func DomainNEQ(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldDomain, v))
}

// DomainIn applies the In predicate on the "domain" field.
func DomainIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldDomain, vs...))
}

// DomainNotIn applies the NotIn predicate on the "domain" field.
func DomainNotIn(vs ...string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldDomain, vs...))
}

// DomainGT applies the GT predicate on the "domain" field.
func DomainGT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldDomain, v))
}

// DomainGTE applies the GTE predicate on the "domain" field.
func DomainGTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldDomain, v))
}

// DomainLT applies the LT predicate on the "domain" field.
func DomainLT(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldDomain, v))
}

// DomainLTE applies the LTE predicate on the "domain" field.
func DomainLTE(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldDomain, v))
}

// DomainContains applies the Contains predicate on the "domain" field.
func DomainContains(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContains(FieldDomain, v))
}

// DomainHasPrefix applies the HasPrefix predicate on the "domain" field.
func DomainHasPrefix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasPrefix(FieldDomain, v))
}

// DomainHasSuffix applies the HasSuffix predicate on the "domain" field.
func DomainHasSuffix(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldHasSuffix(FieldDomain, v))
}

// DomainEqualFold applies the EqualFold predicate on the "domain" field.
func DomainEqualFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEqualFold(FieldDomain, v))
}

// DomainContainsFold applies the ContainsFold predicate on the "domain" field.
func DomainContainsFold(v string) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldContainsFold(FieldDomain, v))
}

// DiscriminationEQ applies the EQ predicate on the "discrimination" field.
func DiscriminationEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldDiscrimination, v))
}

// DiscriminationNEQ applies the NEQ predicate on the "discrimination" field.
func DiscriminationNEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldDiscrimination, v))
}

// DiscriminationIn applies the In predicate on the "discrimination" field.
func DiscriminationIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldDiscrimination, vs...))
}

// DiscriminationNotIn applies the NotIn predicate on the "discrimination" field.
func DiscriminationNotIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldDiscrimination, vs...))
}

// DiscriminationGT applies the GT predicate on the "discrimination" field.
func DiscriminationGT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldDiscrimination, v))
}

// DiscriminationGTE applies the GTE predicate on the "discrimination" field.
func DiscriminationGTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldDiscrimination, v))
}

// DiscriminationLT applies the LT predicate on the "discrimination" field.
func DiscriminationLT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldDiscrimination, v))
}

// DiscriminationLTE applies the LTE predicate on the "discrimination" field.
func DiscriminationLTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldDiscrimination, v))
}

// DifficultyEQ applies the EQ predicate on the "difficulty" field.
func DifficultyEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldDifficulty, v))
}

// DifficultyNEQ applies the NEQ predicate on the "difficulty" field.
func DifficultyNEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldDifficulty, v))
}

// DifficultyIn applies the In predicate on the "difficulty" field.
func DifficultyIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldDifficulty, vs...))
}

// DifficultyNotIn applies the NotIn predicate on the "difficulty" field.
func DifficultyNotIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldDifficulty, vs...))
}

// DifficultyGT applies the GT predicate on the "difficulty" field.
func DifficultyGT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldDifficulty, v))
}

// DifficultyGTE applies the GTE predicate on the "difficulty" field.
func DifficultyGTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldDifficulty, v))
}

// DifficultyLT applies the LT predicate on the "difficulty" field.
func DifficultyLT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldDifficulty, v))
}

// DifficultyLTE applies the LTE predicate on the "difficulty" field.
func DifficultyLTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldDifficulty, v))
}

// CorrectEQ applies the EQ predicate on the "correct" field.
func CorrectEQ(v bool) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldCorrect, v))
}

// CorrectNEQ applies the NEQ predicate on the "correct" field.
func CorrectNEQ(v bool) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldCorrect, v))
}

// ThetaAfterEQ applies the EQ predicate on the "theta_after" field.
func ThetaAfterEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldThetaAfter, v))
}

// ThetaAfterNEQ applies the NEQ predicate on the "theta_after" field.
func ThetaAfterNEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldThetaAfter, v))
}

// ThetaAfterIn applies the In predicate on the "theta_after" field.
func ThetaAfterIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldThetaAfter, vs...))
}

// ThetaAfterNotIn applies the NotIn predicate on the "theta_after" field.
func ThetaAfterNotIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldThetaAfter, vs...))
}

// ThetaAfterGT applies the GT predicate on the "theta_after" field.
func ThetaAfterGT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldThetaAfter, v))
}

// ThetaAfterGTE applies the GTE predicate on the "theta_after" field.
func ThetaAfterGTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldThetaAfter, v))
}

// ThetaAfterLT applies the LT predicate on the "theta_after" field.
func ThetaAfterLT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldThetaAfter, v))
}

// ThetaAfterLTE applies the LTE predicate on the "theta_after" field.
func ThetaAfterLTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldThetaAfter, v))
}

// SeAfterEQ applies the EQ predicate on the "se_after" field.
func SeAfterEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldEQ(FieldSeAfter, v))
}

// SeAfterNEQ applies the NEQ predicate on the "se_after" field.
func SeAfterNEQ(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNEQ(FieldSeAfter, v))
}

// SeAfterIn applies the In predicate on the "se_after" field.
func SeAfterIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldIn(FieldSeAfter, vs...))
}

// SeAfterNotIn applies the NotIn predicate on the "se_after" field.
func SeAfterNotIn(vs ...float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldNotIn(FieldSeAfter, vs...))
}

// SeAfterGT applies the GT predicate on the "se_after" field.
func SeAfterGT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGT(FieldSeAfter, v))
}

// SeAfterGTE applies the GTE predicate on the "se_after" field.
func SeAfterGTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldGTE(FieldSeAfter, v))
}

// SeAfterLT applies the LT predicate on the "se_after" field.
func SeAfterLT(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLT(FieldSeAfter, v))
}

// SeAfterLTE applies the LTE predicate on the "se_after" field.
func SeAfterLTE(v float64) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.FieldLTE(FieldSeAfter, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.ResponseEvent) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.ResponseEvent) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.ResponseEvent) predicate.ResponseEvent {
	return predicate.ResponseEvent(sql.NotPredicates(p))
}
