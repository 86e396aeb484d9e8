// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/gioe/quotient/ent/itemrecord"
	"github.com/gioe/quotient/ent/responseevent"
	"github.com/gioe/quotient/ent/schema"
	"github.com/gioe/quotient/ent/sessionevent"
	"github.com/gioe/quotient/ent/snapshot"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	itemrecordFields := schema.ItemRecord{}.Fields()
	_ = itemrecordFields
	// itemrecordDescItemID is the schema descriptor for item_id field.
	itemrecordDescItemID := itemrecordFields[0].Descriptor()
	// itemrecord.ItemIDValidator is a validator for the "item_id" field. It is called by the builders before save.
	itemrecord.ItemIDValidator = itemrecordDescItemID.Validators[0].(func(string) error)
	// itemrecordDescDomain is the schema descriptor for domain field.
	itemrecordDescDomain := itemrecordFields[1].Descriptor()
	// itemrecord.DomainValidator is a validator for the "domain" field. It is called by the builders before save.
	itemrecord.DomainValidator = itemrecordDescDomain.Validators[0].(func(string) error)
	// itemrecordDescActive is the schema descriptor for active field.
	itemrecordDescActive := itemrecordFields[4].Descriptor()
	// itemrecord.DefaultActive holds the default value on creation for the active field.
	itemrecord.DefaultActive = itemrecordDescActive.Default.(bool)
	// itemrecordDescUpdatedAt is the schema descriptor for updated_at field.
	itemrecordDescUpdatedAt := itemrecordFields[5].Descriptor()
	// itemrecord.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	itemrecord.DefaultUpdatedAt = itemrecordDescUpdatedAt.Default.(func() time.Time)
	// itemrecord.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	itemrecord.UpdateDefaultUpdatedAt = itemrecordDescUpdatedAt.UpdateDefault.(func() time.Time)
	responseeventMixin := schema.ResponseEvent{}.Mixin()
	responseeventMixinFields0 := responseeventMixin[0].Fields()
	_ = responseeventMixinFields0
	responseeventFields := schema.ResponseEvent{}.Fields()
	_ = responseeventFields
	// responseeventDescTimestamp is the schema descriptor for timestamp field.
	responseeventDescTimestamp := responseeventMixinFields0[1].Descriptor()
	// responseevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	responseevent.DefaultTimestamp = responseeventDescTimestamp.Default.(func() time.Time)
	// responseeventDescSessionID is the schema descriptor for session_id field.
	responseeventDescSessionID := responseeventFields[0].Descriptor()
	// responseevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	responseevent.SessionIDValidator = responseeventDescSessionID.Validators[0].(func(string) error)
	// responseeventDescExamineeID is the schema descriptor for examinee_id field.
	responseeventDescExamineeID := responseeventFields[1].Descriptor()
	// responseevent.ExamineeIDValidator is a validator for the "examinee_id" field. It is called by the builders before save.
	responseevent.ExamineeIDValidator = responseeventDescExamineeID.Validators[0].(func(string) error)
	// responseeventDescItemID is the schema descriptor for item_id field.
	responseeventDescItemID := responseeventFields[2].Descriptor()
	// responseevent.ItemIDValidator is a validator for the "item_id" field. It is called by the builders before save.
	responseevent.ItemIDValidator = responseeventDescItemID.Validators[0].(func(string) error)
	// responseeventDescDomain is the schema descriptor for domain field.
	responseeventDescDomain := responseeventFields[3].Descriptor()
	// responseevent.DomainValidator is a validator for the "domain" field. It is called by the builders before save.
	responseevent.DomainValidator = responseeventDescDomain.Validators[0].(func(string) error)
	sessioneventMixin := schema.SessionEvent{}.Mixin()
	sessioneventMixinFields0 := sessioneventMixin[0].Fields()
	_ = sessioneventMixinFields0
	sessioneventFields := schema.SessionEvent{}.Fields()
	_ = sessioneventFields
	// sessioneventDescTimestamp is the schema descriptor for timestamp field.
	sessioneventDescTimestamp := sessioneventMixinFields0[1].Descriptor()
	// sessionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	sessionevent.DefaultTimestamp = sessioneventDescTimestamp.Default.(func() time.Time)
	// sessioneventDescSessionID is the schema descriptor for session_id field.
	sessioneventDescSessionID := sessioneventFields[0].Descriptor()
	// sessionevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	sessionevent.SessionIDValidator = sessioneventDescSessionID.Validators[0].(func(string) error)
	// sessioneventDescExamineeID is the schema descriptor for examinee_id field.
	sessioneventDescExamineeID := sessioneventFields[1].Descriptor()
	// sessionevent.ExamineeIDValidator is a validator for the "examinee_id" field. It is called by the builders before save.
	sessionevent.ExamineeIDValidator = sessioneventDescExamineeID.Validators[0].(func(string) error)
	// sessioneventDescAction is the schema descriptor for action field.
	sessioneventDescAction := sessioneventFields[2].Descriptor()
	// sessionevent.ActionValidator is a validator for the "action" field. It is called by the builders before save.
	sessionevent.ActionValidator = sessioneventDescAction.Validators[0].(func(string) error)
	// sessioneventDescItemsGiven is the schema descriptor for items_given field.
	sessioneventDescItemsGiven := sessioneventFields[3].Descriptor()
	// sessionevent.DefaultItemsGiven holds the default value on creation for the items_given field.
	sessionevent.DefaultItemsGiven = sessioneventDescItemsGiven.Default.(int)
	// sessioneventDescCorrectAnswers is the schema descriptor for correct_answers field.
	sessioneventDescCorrectAnswers := sessioneventFields[4].Descriptor()
	// sessionevent.DefaultCorrectAnswers holds the default value on creation for the correct_answers field.
	sessionevent.DefaultCorrectAnswers = sessioneventDescCorrectAnswers.Default.(int)
	// sessioneventDescTheta is the schema descriptor for theta field.
	sessioneventDescTheta := sessioneventFields[5].Descriptor()
	// sessionevent.DefaultTheta holds the default value on creation for the theta field.
	sessionevent.DefaultTheta = sessioneventDescTheta.Default.(float64)
	// sessioneventDescSe is the schema descriptor for se field.
	sessioneventDescSe := sessioneventFields[6].Descriptor()
	// sessionevent.DefaultSe holds the default value on creation for the se field.
	sessionevent.DefaultSe = sessioneventDescSe.Default.(float64)
	// sessioneventDescScore is the schema descriptor for score field.
	sessioneventDescScore := sessioneventFields[7].Descriptor()
	// sessionevent.DefaultScore holds the default value on creation for the score field.
	sessionevent.DefaultScore = sessioneventDescScore.Default.(int)
	snapshotFields := schema.Snapshot{}.Fields()
	_ = snapshotFields
	// snapshotDescTimestamp is the schema descriptor for timestamp field.
	snapshotDescTimestamp := snapshotFields[1].Descriptor()
	// snapshot.DefaultTimestamp holds the default value on creation for the timestamp field.
	snapshot.DefaultTimestamp = snapshotDescTimestamp.Default.(func() time.Time)
	// snapshotDescSessionID is the schema descriptor for session_id field.
	snapshotDescSessionID := snapshotFields[2].Descriptor()
	// snapshot.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	snapshot.SessionIDValidator = snapshotDescSessionID.Validators[0].(func(string) error)
}
