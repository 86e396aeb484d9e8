// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/gioe/quotient/ent/itemrecord"
)

// ItemRecord is the model entity for the ItemRecord schema.
type ItemRecord struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// Item bank identifier
	ItemID string `json:"item_id,omitempty"`
	// Content domain tag
	Domain string `json:"domain,omitempty"`
	// 2PL discrimination parameter
	Discrimination float64 `json:"discrimination,omitempty"`
	// 2PL difficulty parameter
	Difficulty float64 `json:"difficulty,omitempty"`
	// Inactive items are excluded from selection
	Active bool `json:"active,omitempty"`
	// UpdatedAt holds the value of the "updated_at" field.
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*ItemRecord) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case itemrecord.FieldActive:
			values[i] = new(sql.NullBool)
		case itemrecord.FieldDiscrimination, itemrecord.FieldDifficulty:
			values[i] = new(sql.NullFloat64)
		case itemrecord.FieldID:
			values[i] = new(sql.NullInt64)
		case itemrecord.FieldItemID, itemrecord.FieldDomain:
			values[i] = new(sql.NullString)
		case itemrecord.FieldUpdatedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the ItemRecord fields.
func (_m *ItemRecord) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case itemrecord.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case itemrecord.FieldItemID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field item_id", values[i])
			} else if value.Valid {
				_m.ItemID = value.String
			}
		case itemrecord.FieldDomain:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field domain", values[i])
			} else if value.Valid {
				_m.Domain = value.String
			}
		case itemrecord.FieldDiscrimination:
			if value, ok := values[i].(*sql.NullFloat64); !ok {
				return fmt.Errorf("unexpected type %T for field discrimination", values[i])
			} else if value.Valid {
				_m.Discrimination = value.Float64
			}
		case itemrecord.FieldDifficulty:
			if value, ok := values[i].(*sql.NullFloat64); !ok {
				return fmt.Errorf("unexpected type %T for field difficulty", values[i])
			} else if value.Valid {
				_m.Difficulty = value.Float64
			}
		case itemrecord.FieldActive:
			if value, ok := values[i].(*sql.NullBool); !ok {
				return fmt.Errorf("unexpected type %T for field active", values[i])
			} else if value.Valid {
				_m.Active = value.Bool
			}
		case itemrecord.FieldUpdatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field updated_at", values[i])
			} else if value.Valid {
				_m.UpdatedAt = value.Time
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the ItemRecord.
// This includes values selected through modifiers, order, etc.
func (_m *ItemRecord) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this ItemRecord.
// Note that you need to call ItemRecord.Unwrap() before calling this method if this ItemRecord
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *ItemRecord) Update() *ItemRecordUpdateOne {
	return NewItemRecordClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the ItemRecord entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *ItemRecord) Unwrap() *ItemRecord {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: ItemRecord is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *ItemRecord) String() string {
	var builder strings.Builder
	builder.WriteString("ItemRecord(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("item_id=")
	builder.WriteString(_m.ItemID)
	builder.WriteString(", ")
	builder.WriteString("domain=")
	builder.WriteString(_m.Domain)
	builder.WriteString(", ")
	builder.WriteString("discrimination=")
	builder.WriteString(fmt.Sprintf("%v", _m.Discrimination))
	builder.WriteString(", ")
	builder.WriteString("difficulty=")
	builder.WriteString(fmt.Sprintf("%v", _m.Difficulty))
	builder.WriteString(", ")
	builder.WriteString("active=")
	builder.WriteString(fmt.Sprintf("%v", _m.Active))
	builder.WriteString(", ")
	builder.WriteString("updated_at=")
	builder.WriteString(_m.UpdatedAt.Format(time.ANSIC))
	builder.WriteByte(')')
	return builder.String()
}

// ItemRecords is a parsable slice of ItemRecord.
type ItemRecords []*ItemRecord
