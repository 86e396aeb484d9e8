// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/gioe/quotient/ent/predicate"
	"github.com/gioe/quotient/ent/sessionevent"
)

// SessionEventUpdate is the builder for updating SessionEvent entities.
type SessionEventUpdate struct {
	config
	hooks    []Hook
	mutation *SessionEventMutation
}

// Where appends a list predicates to the SessionEventUpdate builder.
func (_u *SessionEventUpdate) Where(ps ...predicate.SessionEvent) *SessionEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *SessionEventUpdate) SetSessionID(v string) *SessionEventUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableSessionID(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetExamineeID sets the "examinee_id" field.
func (_u *SessionEventUpdate) SetExamineeID(v string) *SessionEventUpdate {
	_u.mutation.SetExamineeID(v)
	return _u
}

// SetNillableExamineeID sets the "examinee_id" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableExamineeID(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetExamineeID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *SessionEventUpdate) SetAction(v string) *SessionEventUpdate {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableAction(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetItemsGiven sets the "items_given" field.
func (_u *SessionEventUpdate) SetItemsGiven(v int) *SessionEventUpdate {
	_u.mutation.ResetItemsGiven()
	_u.mutation.SetItemsGiven(v)
	return _u
}

// SetNillableItemsGiven sets the "items_given" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableItemsGiven(v *int) *SessionEventUpdate {
	if v != nil {
		_u.SetItemsGiven(*v)
	}
	return _u
}

// AddItemsGiven adds value to the "items_given" field.
func (_u *SessionEventUpdate) AddItemsGiven(v int) *SessionEventUpdate {
	_u.mutation.AddItemsGiven(v)
	return _u
}

// SetCorrectAnswers sets the "correct_answers" field.
func (_u *SessionEventUpdate) SetCorrectAnswers(v int) *SessionEventUpdate {
	_u.mutation.ResetCorrectAnswers()
	_u.mutation.SetCorrectAnswers(v)
	return _u
}

// SetNillableCorrectAnswers sets the "correct_answers" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableCorrectAnswers(v *int) *SessionEventUpdate {
	if v != nil {
		_u.SetCorrectAnswers(*v)
	}
	return _u
}

// AddCorrectAnswers adds value to the "correct_answers" field.
func (_u *SessionEventUpdate) AddCorrectAnswers(v int) *SessionEventUpdate {
	_u.mutation.AddCorrectAnswers(v)
	return _u
}

// SetTheta sets the "theta" field.
func (_u *SessionEventUpdate) SetTheta(v float64) *SessionEventUpdate {
	_u.mutation.ResetTheta()
	_u.mutation.SetTheta(v)
	return _u
}

// SetNillableTheta sets the "theta" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableTheta(v *float64) *SessionEventUpdate {
	if v != nil {
		_u.SetTheta(*v)
	}
	return _u
}

// AddTheta adds value to the "theta" field.
func (_u *SessionEventUpdate) AddTheta(v float64) *SessionEventUpdate {
	_u.mutation.AddTheta(v)
	return _u
}

// SetSe sets the "se" field.
func (_u *SessionEventUpdate) SetSe(v float64) *SessionEventUpdate {
	_u.mutation.ResetSe()
	_u.mutation.SetSe(v)
	return _u
}

// SetNillableSe sets the "se" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableSe(v *float64) *SessionEventUpdate {
	if v != nil {
		_u.SetSe(*v)
	}
	return _u
}

// AddSe adds value to the "se" field.
func (_u *SessionEventUpdate) AddSe(v float64) *SessionEventUpdate {
	_u.mutation.AddSe(v)
	return _u
}

// SetScore sets the "score" field.
func (_u *SessionEventUpdate) SetScore(v int) *SessionEventUpdate {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableScore(v *int) *SessionEventUpdate {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *SessionEventUpdate) AddScore(v int) *SessionEventUpdate {
	_u.mutation.AddScore(v)
	return _u
}

// SetStopReason sets the "stop_reason" field.
func (_u *SessionEventUpdate) SetStopReason(v string) *SessionEventUpdate {
	_u.mutation.SetStopReason(v)
	return _u
}

// SetNillableStopReason sets the "stop_reason" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableStopReason(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetStopReason(*v)
	}
	return _u
}

// ClearStopReason clears the value of the "stop_reason" field.
func (_u *SessionEventUpdate) ClearStopReason() *SessionEventUpdate {
	_u.mutation.ClearStopReason()
	return _u
}

// Mutation returns the SessionEventMutation object of the builder.
func (_u *SessionEventUpdate) Mutation() *SessionEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SessionEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SessionEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SessionEventUpdate) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := sessionevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.ExamineeID(); ok {
		if err := sessionevent.ExamineeIDValidator(v); err != nil {
			return &ValidationError{Name: "examinee_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.examinee_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := sessionevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.action": %w`, err)}
		}
	}
	return nil
}

func (_u *SessionEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(sessionevent.Table, sessionevent.Columns, sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(sessionevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.ExamineeID(); ok {
		_spec.SetField(sessionevent.FieldExamineeID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(sessionevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.ItemsGiven(); ok {
		_spec.SetField(sessionevent.FieldItemsGiven, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedItemsGiven(); ok {
		_spec.AddField(sessionevent.FieldItemsGiven, field.TypeInt, value)
	}
	if value, ok := _u.mutation.CorrectAnswers(); ok {
		_spec.SetField(sessionevent.FieldCorrectAnswers, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedCorrectAnswers(); ok {
		_spec.AddField(sessionevent.FieldCorrectAnswers, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Theta(); ok {
		_spec.SetField(sessionevent.FieldTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedTheta(); ok {
		_spec.AddField(sessionevent.FieldTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Se(); ok {
		_spec.SetField(sessionevent.FieldSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedSe(); ok {
		_spec.AddField(sessionevent.FieldSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(sessionevent.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(sessionevent.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.StopReason(); ok {
		_spec.SetField(sessionevent.FieldStopReason, field.TypeString, value)
	}
	if _u.mutation.StopReasonCleared() {
		_spec.ClearField(sessionevent.FieldStopReason, field.TypeString)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SessionEventUpdateOne is the builder for updating a single SessionEvent entity.
type SessionEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SessionEventMutation
}

// SetSessionID sets the "session_id" field.
func (_u *SessionEventUpdateOne) SetSessionID(v string) *SessionEventUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableSessionID(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetExamineeID sets the "examinee_id" field.
func (_u *SessionEventUpdateOne) SetExamineeID(v string) *SessionEventUpdateOne {
	_u.mutation.SetExamineeID(v)
	return _u
}

// SetNillableExamineeID sets the "examinee_id" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableExamineeID(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetExamineeID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *SessionEventUpdateOne) SetAction(v string) *SessionEventUpdateOne {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableAction(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetItemsGiven sets the "items_given" field.
func (_u *SessionEventUpdateOne) SetItemsGiven(v int) *SessionEventUpdateOne {
	_u.mutation.ResetItemsGiven()
	_u.mutation.SetItemsGiven(v)
	return _u
}

// SetNillableItemsGiven sets the "items_given" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableItemsGiven(v *int) *SessionEventUpdateOne {
	if v != nil {
		_u.SetItemsGiven(*v)
	}
	return _u
}

// AddItemsGiven adds value to the "items_given" field.
func (_u *SessionEventUpdateOne) AddItemsGiven(v int) *SessionEventUpdateOne {
	_u.mutation.AddItemsGiven(v)
	return _u
}

// SetCorrectAnswers sets the "correct_answers" field.
func (_u *SessionEventUpdateOne) SetCorrectAnswers(v int) *SessionEventUpdateOne {
	_u.mutation.ResetCorrectAnswers()
	_u.mutation.SetCorrectAnswers(v)
	return _u
}

// SetNillableCorrectAnswers sets the "correct_answers" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableCorrectAnswers(v *int) *SessionEventUpdateOne {
	if v != nil {
		_u.SetCorrectAnswers(*v)
	}
	return _u
}

// AddCorrectAnswers adds value to the "correct_answers" field.
func (_u *SessionEventUpdateOne) AddCorrectAnswers(v int) *SessionEventUpdateOne {
	_u.mutation.AddCorrectAnswers(v)
	return _u
}

// SetTheta sets the "theta" field.
func (_u *SessionEventUpdateOne) SetTheta(v float64) *SessionEventUpdateOne {
	_u.mutation.ResetTheta()
	_u.mutation.SetTheta(v)
	return _u
}

// SetNillableTheta sets the "theta" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableTheta(v *float64) *SessionEventUpdateOne {
	if v != nil {
		_u.SetTheta(*v)
	}
	return _u
}

// AddTheta adds value to the "theta" field.
func (_u *SessionEventUpdateOne) AddTheta(v float64) *SessionEventUpdateOne {
	_u.mutation.AddTheta(v)
	return _u
}

// SetSe sets the "se" field.
func (_u *SessionEventUpdateOne) SetSe(v float64) *SessionEventUpdateOne {
	_u.mutation.ResetSe()
	_u.mutation.SetSe(v)
	return _u
}

// SetNillableSe sets the "se" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableSe(v *float64) *SessionEventUpdateOne {
	if v != nil {
		_u.SetSe(*v)
	}
	return _u
}

// AddSe adds value to the "se" field.
func (_u *SessionEventUpdateOne) AddSe(v float64) *SessionEventUpdateOne {
	_u.mutation.AddSe(v)
	return _u
}

// SetScore sets the "score" field.
func (_u *SessionEventUpdateOne) SetScore(v int) *SessionEventUpdateOne {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableScore(v *int) *SessionEventUpdateOne {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *SessionEventUpdateOne) AddScore(v int) *SessionEventUpdateOne {
	_u.mutation.AddScore(v)
	return _u
}

// SetStopReason sets the "stop_reason" field.
func (_u *SessionEventUpdateOne) SetStopReason(v string) *SessionEventUpdateOne {
	_u.mutation.SetStopReason(v)
	return _u
}

// SetNillableStopReason sets the "stop_reason" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableStopReason(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetStopReason(*v)
	}
	return _u
}

// ClearStopReason clears the value of the "stop_reason" field.
func (_u *SessionEventUpdateOne) ClearStopReason() *SessionEventUpdateOne {
	_u.mutation.ClearStopReason()
	return _u
}

// Mutation returns the SessionEventMutation object of the builder.
func (_u *SessionEventUpdateOne) Mutation() *SessionEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the SessionEventUpdate builder.
func (_u *SessionEventUpdateOne) Where(ps ...predicate.SessionEvent) *SessionEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SessionEventUpdateOne) Select(field string, fields ...string) *SessionEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated SessionEvent entity.
func (_u *SessionEventUpdateOne) Save(ctx context.Context) (*SessionEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionEventUpdateOne) SaveX(ctx context.Context) *SessionEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SessionEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SessionEventUpdateOne) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := sessionevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.ExamineeID(); ok {
		if err := sessionevent.ExamineeIDValidator(v); err != nil {
			return &ValidationError{Name: "examinee_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.examinee_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := sessionevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.action": %w`, err)}
		}
	}
	return nil
}

func (_u *SessionEventUpdateOne) sqlSave(ctx context.Context) (_node *SessionEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(sessionevent.Table, sessionevent.Columns, sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "SessionEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, sessionevent.FieldID)
		for _, f := range fields {
			if !sessionevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != sessionevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(sessionevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.ExamineeID(); ok {
		_spec.SetField(sessionevent.FieldExamineeID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(sessionevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.ItemsGiven(); ok {
		_spec.SetField(sessionevent.FieldItemsGiven, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedItemsGiven(); ok {
		_spec.AddField(sessionevent.FieldItemsGiven, field.TypeInt, value)
	}
	if value, ok := _u.mutation.CorrectAnswers(); ok {
		_spec.SetField(sessionevent.FieldCorrectAnswers, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedCorrectAnswers(); ok {
		_spec.AddField(sessionevent.FieldCorrectAnswers, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Theta(); ok {
		_spec.SetField(sessionevent.FieldTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedTheta(); ok {
		_spec.AddField(sessionevent.FieldTheta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Se(); ok {
		_spec.SetField(sessionevent.FieldSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedSe(); ok {
		_spec.AddField(sessionevent.FieldSe, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(sessionevent.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(sessionevent.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.StopReason(); ok {
		_spec.SetField(sessionevent.FieldStopReason, field.TypeString, value)
	}
	if _u.mutation.StopReasonCleared() {
		_spec.ClearField(sessionevent.FieldStopReason, field.TypeString)
	}
	_node = &SessionEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
