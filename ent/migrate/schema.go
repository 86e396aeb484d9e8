// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ItemRecordsColumns holds the columns for the "item_records" table.
	ItemRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "item_id", Type: field.TypeString, Unique: true},
		{Name: "domain", Type: field.TypeString},
		{Name: "discrimination", Type: field.TypeFloat64},
		{Name: "difficulty", Type: field.TypeFloat64},
		{Name: "active", Type: field.TypeBool, Default: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ItemRecordsTable holds the schema information for the "item_records" table.
	ItemRecordsTable = &schema.Table{
		Name:       "item_records",
		Columns:    ItemRecordsColumns,
		PrimaryKey: []*schema.Column{ItemRecordsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "itemrecord_domain",
				Unique:  false,
				Columns: []*schema.Column{ItemRecordsColumns[2]},
			},
			{
				Name:    "itemrecord_active",
				Unique:  false,
				Columns: []*schema.Column{ItemRecordsColumns[5]},
			},
		},
	}
	// ResponseEventsColumns holds the columns for the "response_events" table.
	ResponseEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "examinee_id", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "domain", Type: field.TypeString},
		{Name: "discrimination", Type: field.TypeFloat64},
		{Name: "difficulty", Type: field.TypeFloat64},
		{Name: "correct", Type: field.TypeBool},
		{Name: "theta_after", Type: field.TypeFloat64},
		{Name: "se_after", Type: field.TypeFloat64},
	}
	// ResponseEventsTable holds the schema information for the "response_events" table.
	ResponseEventsTable = &schema.Table{
		Name:       "response_events",
		Columns:    ResponseEventsColumns,
		PrimaryKey: []*schema.Column{ResponseEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "responseevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{ResponseEventsColumns[1]},
			},
			{
				Name:    "responseevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{ResponseEventsColumns[2]},
			},
			{
				Name:    "responseevent_session_id",
				Unique:  false,
				Columns: []*schema.Column{ResponseEventsColumns[3]},
			},
			{
				Name:    "responseevent_examinee_id",
				Unique:  false,
				Columns: []*schema.Column{ResponseEventsColumns[4]},
			},
			{
				Name:    "responseevent_item_id",
				Unique:  false,
				Columns: []*schema.Column{ResponseEventsColumns[5]},
			},
			{
				Name:    "responseevent_correct",
				Unique:  false,
				Columns: []*schema.Column{ResponseEventsColumns[9]},
			},
		},
	}
	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "examinee_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "items_given", Type: field.TypeInt, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "theta", Type: field.TypeFloat64, Default: 0},
		{Name: "se", Type: field.TypeFloat64, Default: 0},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "stop_reason", Type: field.TypeString, Nullable: true},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "sessionevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[1]},
			},
			{
				Name:    "sessionevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[2]},
			},
			{
				Name:    "sessionevent_session_id",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[3]},
			},
			{
				Name:    "sessionevent_examinee_id",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[4]},
			},
			{
				Name:    "sessionevent_action",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[5]},
			},
		},
	}
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "snapshot_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[2]},
			},
			{
				Name:    "snapshot_sequence",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[1]},
			},
			{
				Name:    "snapshot_session_id",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[3]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ItemRecordsTable,
		ResponseEventsTable,
		SessionEventsTable,
		SnapshotsTable,
	}
)

func init() {
}
