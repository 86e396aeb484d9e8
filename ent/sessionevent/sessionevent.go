// Code generated by ent, DO NOT EDIT.

package sessionevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
)

const (
	// Label holds the string label denoting the sessionevent type in the database.
	Label = "session_event"
	// FieldID holds the string denoting the id field in the database.
	FieldID = "id"
	// FieldSequence holds the string denoting the sequence field in the database.
	FieldSequence = "sequence"
	// FieldTimestamp holds the string denoting the timestamp field in the database.
	FieldTimestamp = "timestamp"
	// FieldSessionID holds the string denoting the session_id field in the database.
	FieldSessionID = "session_id"
	// FieldExamineeID holds the string denoting the examinee_id field in the database.
	FieldExamineeID = "examinee_id"
	// FieldAction holds the string denoting the action field in the database.
	FieldAction = "action"
	// FieldItemsGiven holds the string denoting the items_given field in the database.
	FieldItemsGiven = "items_given"
	// FieldCorrectAnswers holds the string denoting the correct_answers field in the database.
	FieldCorrectAnswers = "correct_answers"
	// FieldTheta holds the string denoting the theta field in the database.
	FieldTheta = "theta"
	// FieldSe holds the string denoting the se field in the database.
	FieldSe = "se"
	// FieldScore holds the string denoting the score field in the database.
	FieldScore = "score"
	// FieldStopReason holds the string denoting the stop_reason field in the database.
	FieldStopReason = "stop_reason"
	// Table holds the table name of the sessionevent in the database.
	Table = "session_events"
)

// Columns holds all SQL columns for sessionevent fields.
var Columns = []string{
	FieldID,
	FieldSequence,
	FieldTimestamp,
	FieldSessionID,
	FieldExamineeID,
	FieldAction,
	FieldItemsGiven,
	FieldCorrectAnswers,
	FieldTheta,
	FieldSe,
	FieldScore,
	FieldStopReason,
}

// ValidColumn reports if the column name is valid (part of the table columns).
func ValidColumn(column string) bool {
	for i := range Columns {
		if column == Columns[i] {
			return true
		}
	}
	return false
}

var (
	// DefaultTimestamp holds the default value on creation for the "timestamp" field.
	DefaultTimestamp func() time.Time
	// SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	SessionIDValidator func(string) error
	// ExamineeIDValidator is a validator for the "examinee_id" field. It is called by the builders before save.
	ExamineeIDValidator func(string) error
	// ActionValidator is a validator for the "action" field. It is called by the builders before save.
	ActionValidator func(string) error
	// DefaultItemsGiven holds the default value on creation for the "items_given" field.
	DefaultItemsGiven int
	// DefaultCorrectAnswers holds the default value on creation for the "correct_answers" field.
	DefaultCorrectAnswers int
	// DefaultTheta holds the default value on creation for the "theta" field.
	DefaultTheta float64
	// DefaultSe holds the default value on creation for the "se" field.
	DefaultSe float64
	// DefaultScore holds the default value on creation for the "score" field.
	DefaultScore int
)

// OrderOption defines the ordering options for the SessionEvent queries.
type OrderOption func(*sql.Selector)

// ByID orders the results by the id field.
func ByID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldID, opts...).ToFunc()
}

// BySequence orders the results by the sequence field.
func BySequence(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldSequence, opts...).ToFunc()
}

// ByTimestamp orders the results by the timestamp field.
func ByTimestamp(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTimestamp, opts...).ToFunc()
}

// BySessionID orders the results by the session_id field.
func BySessionID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldSessionID, opts...).ToFunc()
}

// ByExamineeID orders the results by the examinee_id field.
func ByExamineeID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldExamineeID, opts...).ToFunc()
}

// ByAction orders the results by the action field.
func ByAction(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldAction, opts...).ToFunc()
}

// ByItemsGiven orders the results by the items_given field.
func ByItemsGiven(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldItemsGiven, opts...).ToFunc()
}

// ByCorrectAnswers orders the results by the correct_answers field.
func ByCorrectAnswers(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldCorrectAnswers, opts...).ToFunc()
}

// ByTheta orders the results by the theta field.
func ByTheta(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTheta, opts...).ToFunc()
}

// BySe orders the results by the se field.
func BySe(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldSe, opts...).ToFunc()
}

// ByScore orders the results by the score field.
func ByScore(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldScore, opts...).ToFunc()
}

// ByStopReason orders the results by the stop_reason field.
func ByStopReason(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldStopReason, opts...).ToFunc()
}
