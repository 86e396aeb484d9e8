// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/gioe/quotient/ent/itemrecord"
	"github.com/gioe/quotient/ent/predicate"
)

// ItemRecordUpdate is the builder for updating ItemRecord entities.
type ItemRecordUpdate struct {
	config
	hooks    []Hook
	mutation *ItemRecordMutation
}

// Where appends a list predicates to the ItemRecordUpdate builder.
func (_u *ItemRecordUpdate) Where(ps ...predicate.ItemRecord) *ItemRecordUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetItemID sets the "item_id" field.
func (_u *ItemRecordUpdate) SetItemID(v string) *ItemRecordUpdate {
	_u.mutation.SetItemID(v)
	return _u
}

// SetNillableItemID sets the "item_id" field if the given value is not nil.
func (_u *ItemRecordUpdate) SetNillableItemID(v *string) *ItemRecordUpdate {
	if v != nil {
		_u.SetItemID(*v)
	}
	return _u
}

// SetDomain sets the "domain" field.
func (_u *ItemRecordUpdate) SetDomain(v string) *ItemRecordUpdate {
	_u.mutation.SetDomain(v)
	return _u
}

// SetNillableDomain sets the "domain" field if the given value is not nil.
func (_u *ItemRecordUpdate) SetNillableDomain(v *string) *ItemRecordUpdate {
	if v != nil {
		_u.SetDomain(*v)
	}
	return _u
}

// SetDiscrimination sets the "discrimination" field.
func (_u *ItemRecordUpdate) SetDiscrimination(v float64) *ItemRecordUpdate {
	_u.mutation.ResetDiscrimination()
	_u.mutation.SetDiscrimination(v)
	return _u
}

// SetNillableDiscrimination sets the "discrimination" field if the given value is not nil.
func (_u *ItemRecordUpdate) SetNillableDiscrimination(v *float64) *ItemRecordUpdate {
	if v != nil {
		_u.SetDiscrimination(*v)
	}
	return _u
}

// AddDiscrimination adds value to the "discrimination" field.
func (_u *ItemRecordUpdate) AddDiscrimination(v float64) *ItemRecordUpdate {
	_u.mutation.AddDiscrimination(v)
	return _u
}

// SetDifficulty sets the "difficulty" field.
func (_u *ItemRecordUpdate) SetDifficulty(v float64) *ItemRecordUpdate {
	_u.mutation.ResetDifficulty()
	_u.mutation.SetDifficulty(v)
	return _u
}

// SetNillableDifficulty sets the "difficulty" field if the given value is not nil.
func (_u *ItemRecordUpdate) SetNillableDifficulty(v *float64) *ItemRecordUpdate {
	if v != nil {
		_u.SetDifficulty(*v)
	}
	return _u
}

// AddDifficulty adds value to the "difficulty" field.
func (_u *ItemRecordUpdate) AddDifficulty(v float64) *ItemRecordUpdate {
	_u.mutation.AddDifficulty(v)
	return _u
}

// SetActive sets the "active" field.
func (_u *ItemRecordUpdate) SetActive(v bool) *ItemRecordUpdate {
	_u.mutation.SetActive(v)
	return _u
}

// SetNillableActive sets the "active" field if the given value is not nil.
func (_u *ItemRecordUpdate) SetNillableActive(v *bool) *ItemRecordUpdate {
	if v != nil {
		_u.SetActive(*v)
	}
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *ItemRecordUpdate) SetUpdatedAt(v time.Time) *ItemRecordUpdate {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the ItemRecordMutation object of the builder.
func (_u *ItemRecordUpdate) Mutation() *ItemRecordMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *ItemRecordUpdate) Save(ctx context.Context) (int, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ItemRecordUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *ItemRecordUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ItemRecordUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *ItemRecordUpdate) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := itemrecord.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *ItemRecordUpdate) check() error {
	if v, ok := _u.mutation.ItemID(); ok {
		if err := itemrecord.ItemIDValidator(v); err != nil {
			return &ValidationError{Name: "item_id", err: fmt.Errorf(`ent: validator failed for field "ItemRecord.item_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Domain(); ok {
		if err := itemrecord.DomainValidator(v); err != nil {
			return &ValidationError{Name: "domain", err: fmt.Errorf(`ent: validator failed for field "ItemRecord.domain": %w`, err)}
		}
	}
	return nil
}

func (_u *ItemRecordUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(itemrecord.Table, itemrecord.Columns, sqlgraph.NewFieldSpec(itemrecord.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.ItemID(); ok {
		_spec.SetField(itemrecord.FieldItemID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Domain(); ok {
		_spec.SetField(itemrecord.FieldDomain, field.TypeString, value)
	}
	if value, ok := _u.mutation.Discrimination(); ok {
		_spec.SetField(itemrecord.FieldDiscrimination, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedDiscrimination(); ok {
		_spec.AddField(itemrecord.FieldDiscrimination, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Difficulty(); ok {
		_spec.SetField(itemrecord.FieldDifficulty, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedDifficulty(); ok {
		_spec.AddField(itemrecord.FieldDifficulty, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Active(); ok {
		_spec.SetField(itemrecord.FieldActive, field.TypeBool, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(itemrecord.FieldUpdatedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{itemrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// ItemRecordUpdateOne is the builder for updating a single ItemRecord entity.
type ItemRecordUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *ItemRecordMutation
}

// SetItemID sets the "item_id" field.
func (_u *ItemRecordUpdateOne) SetItemID(v string) *ItemRecordUpdateOne {
	_u.mutation.SetItemID(v)
	return _u
}

// SetNillableItemID sets the "item_id" field if the given value is not nil.
func (_u *ItemRecordUpdateOne) SetNillableItemID(v *string) *ItemRecordUpdateOne {
	if v != nil {
		_u.SetItemID(*v)
	}
	return _u
}

// SetDomain sets the "domain" field.
func (_u *ItemRecordUpdateOne) SetDomain(v string) *ItemRecordUpdateOne {
	_u.mutation.SetDomain(v)
	return _u
}

// SetNillableDomain sets the "domain" field if the given value is not nil.
func (_u *ItemRecordUpdateOne) SetNillableDomain(v *string) *ItemRecordUpdateOne {
	if v != nil {
		_u.SetDomain(*v)
	}
	return _u
}

// SetDiscrimination sets the "discrimination" field.
func (_u *ItemRecordUpdateOne) SetDiscrimination(v float64) *ItemRecordUpdateOne {
	_u.mutation.ResetDiscrimination()
	_u.mutation.SetDiscrimination(v)
	return _u
}

// SetNillableDiscrimination sets the "discrimination" field if the given value is not nil.
func (_u *ItemRecordUpdateOne) SetNillableDiscrimination(v *float64) *ItemRecordUpdateOne {
	if v != nil {
		_u.SetDiscrimination(*v)
	}
	return _u
}

// AddDiscrimination adds value to the "discrimination" field.
func (_u *ItemRecordUpdateOne) AddDiscrimination(v float64) *ItemRecordUpdateOne {
	_u.mutation.AddDiscrimination(v)
	return _u
}

// SetDifficulty sets the "difficulty" field.
func (_u *ItemRecordUpdateOne) SetDifficulty(v float64) *ItemRecordUpdateOne {
	_u.mutation.ResetDifficulty()
	_u.mutation.SetDifficulty(v)
	return _u
}

// SetNillableDifficulty sets the "difficulty" field if the given value is not nil.
func (_u *ItemRecordUpdateOne) SetNillableDifficulty(v *float64) *ItemRecordUpdateOne {
	if v != nil {
		_u.SetDifficulty(*v)
	}
	return _u
}

// AddDifficulty adds value to the "difficulty" field.
func (_u *ItemRecordUpdateOne) AddDifficulty(v float64) *ItemRecordUpdateOne {
	_u.mutation.AddDifficulty(v)
	return _u
}

// SetActive sets the "active" field.
func (_u *ItemRecordUpdateOne) SetActive(v bool) *ItemRecordUpdateOne {
	_u.mutation.SetActive(v)
	return _u
}

// SetNillableActive sets the "active" field if the given value is not nil.
func (_u *ItemRecordUpdateOne) SetNillableActive(v *bool) *ItemRecordUpdateOne {
	if v != nil {
		_u.SetActive(*v)
	}
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *ItemRecordUpdateOne) SetUpdatedAt(v time.Time) *ItemRecordUpdateOne {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the ItemRecordMutation object of the builder.
func (_u *ItemRecordUpdateOne) Mutation() *ItemRecordMutation {
	return _u.mutation
}

// Where appends a list predicates to the ItemRecordUpdate builder.
func (_u *ItemRecordUpdateOne) Where(ps ...predicate.ItemRecord) *ItemRecordUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *ItemRecordUpdateOne) Select(field string, fields ...string) *ItemRecordUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated ItemRecord entity.
func (_u *ItemRecordUpdateOne) Save(ctx context.Context) (*ItemRecord, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ItemRecordUpdateOne) SaveX(ctx context.Context) *ItemRecord {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *ItemRecordUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ItemRecordUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *ItemRecordUpdateOne) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := itemrecord.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *ItemRecordUpdateOne) check() error {
	if v, ok := _u.mutation.ItemID(); ok {
		if err := itemrecord.ItemIDValidator(v); err != nil {
			return &ValidationError{Name: "item_id", err: fmt.Errorf(`ent: validator failed for field "ItemRecord.item_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Domain(); ok {
		if err := itemrecord.DomainValidator(v); err != nil {
			return &ValidationError{Name: "domain", err: fmt.Errorf(`ent: validator failed for field "ItemRecord.domain": %w`, err)}
		}
	}
	return nil
}

func (_u *ItemRecordUpdateOne) sqlSave(ctx context.Context) (_node *ItemRecord, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(itemrecord.Table, itemrecord.Columns, sqlgraph.NewFieldSpec(itemrecord.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "ItemRecord.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, itemrecord.FieldID)
		for _, f := range fields {
			if !itemrecord.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != itemrecord.FieldID {
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
	if value, ok := _u.mutation.ItemID(); ok {
		_spec.SetField(itemrecord.FieldItemID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Domain(); ok {
		_spec.SetField(itemrecord.FieldDomain, field.TypeString, value)
	}
	if value, ok := _u.mutation.Discrimination(); ok {
		_spec.SetField(itemrecord.FieldDiscrimination, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedDiscrimination(); ok {
		_spec.AddField(itemrecord.FieldDiscrimination, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Difficulty(); ok {
		_spec.SetField(itemrecord.FieldDifficulty, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedDifficulty(); ok {
		_spec.AddField(itemrecord.FieldDifficulty, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Active(); ok {
		_spec.SetField(itemrecord.FieldActive, field.TypeBool, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(itemrecord.FieldUpdatedAt, field.TypeTime, value)
	}
	_node = &ItemRecord{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{itemrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
