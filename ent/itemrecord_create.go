// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/gioe/quotient/ent/itemrecord"
)

// ItemRecordCreate is the builder for creating a ItemRecord entity.
type ItemRecordCreate struct {
	config
	mutation *ItemRecordMutation
	hooks    []Hook
}

// SetItemID sets the "item_id" field.
func (_c *ItemRecordCreate) SetItemID(v string) *ItemRecordCreate {
	_c.mutation.SetItemID(v)
	return _c
}

// SetDomain sets the "domain" field.
func (_c *ItemRecordCreate) SetDomain(v string) *ItemRecordCreate {
	_c.mutation.SetDomain(v)
	return _c
}

// SetDiscrimination sets the "discrimination" field.
func (_c *ItemRecordCreate) SetDiscrimination(v float64) *ItemRecordCreate {
	_c.mutation.SetDiscrimination(v)
	return _c
}

// SetDifficulty sets the "difficulty" field.
func (_c *ItemRecordCreate) SetDifficulty(v float64) *ItemRecordCreate {
	_c.mutation.SetDifficulty(v)
	return _c
}

// SetActive sets the "active" field.
func (_c *ItemRecordCreate) SetActive(v bool) *ItemRecordCreate {
	_c.mutation.SetActive(v)
	return _c
}

// SetNillableActive sets the "active" field if the given value is not nil.
func (_c *ItemRecordCreate) SetNillableActive(v *bool) *ItemRecordCreate {
	if v != nil {
		_c.SetActive(*v)
	}
	return _c
}

// SetUpdatedAt sets the "updated_at" field.
func (_c *ItemRecordCreate) SetUpdatedAt(v time.Time) *ItemRecordCreate {
	_c.mutation.SetUpdatedAt(v)
	return _c
}

// SetNillableUpdatedAt sets the "updated_at" field if the given value is not nil.
func (_c *ItemRecordCreate) SetNillableUpdatedAt(v *time.Time) *ItemRecordCreate {
	if v != nil {
		_c.SetUpdatedAt(*v)
	}
	return _c
}

// Mutation returns the ItemRecordMutation object of the builder.
func (_c *ItemRecordCreate) Mutation() *ItemRecordMutation {
	return _c.mutation
}

// Save creates the ItemRecord in the database.
func (_c *ItemRecordCreate) Save(ctx context.Context) (*ItemRecord, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *ItemRecordCreate) SaveX(ctx context.Context) *ItemRecord {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *ItemRecordCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *ItemRecordCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *ItemRecordCreate) defaults() {
	if _, ok := _c.mutation.Active(); !ok {
		v := itemrecord.DefaultActive
		_c.mutation.SetActive(v)
	}
	if _, ok := _c.mutation.UpdatedAt(); !ok {
		v := itemrecord.DefaultUpdatedAt()
		_c.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *ItemRecordCreate) check() error {
	if _, ok := _c.mutation.ItemID(); !ok {
		return &ValidationError{Name: "item_id", err: errors.New(`ent: missing required field "ItemRecord.item_id"`)}
	}
	if v, ok := _c.mutation.ItemID(); ok {
		if err := itemrecord.ItemIDValidator(v); err != nil {
			return &ValidationError{Name: "item_id", err: fmt.Errorf(`ent: validator failed for field "ItemRecord.item_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Domain(); !ok {
		return &ValidationError{Name: "domain", err: errors.New(`ent: missing required field "ItemRecord.domain"`)}
	}
	if v, ok := _c.mutation.Domain(); ok {
		if err := itemrecord.DomainValidator(v); err != nil {
			return &ValidationError{Name: "domain", err: fmt.Errorf(`ent: validator failed for field "ItemRecord.domain": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Discrimination(); !ok {
		return &ValidationError{Name: "discrimination", err: errors.New(`ent: missing required field "ItemRecord.discrimination"`)}
	}
	if _, ok := _c.mutation.Difficulty(); !ok {
		return &ValidationError{Name: "difficulty", err: errors.New(`ent: missing required field "ItemRecord.difficulty"`)}
	}
	if _, ok := _c.mutation.Active(); !ok {
		return &ValidationError{Name: "active", err: errors.New(`ent: missing required field "ItemRecord.active"`)}
	}
	if _, ok := _c.mutation.UpdatedAt(); !ok {
		return &ValidationError{Name: "updated_at", err: errors.New(`ent: missing required field "ItemRecord.updated_at"`)}
	}
	return nil
}

func (_c *ItemRecordCreate) sqlSave(ctx context.Context) (*ItemRecord, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *ItemRecordCreate) createSpec() (*ItemRecord, *sqlgraph.CreateSpec) {
	var (
		_node = &ItemRecord{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(itemrecord.Table, sqlgraph.NewFieldSpec(itemrecord.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.ItemID(); ok {
		_spec.SetField(itemrecord.FieldItemID, field.TypeString, value)
		_node.ItemID = value
	}
	if value, ok := _c.mutation.Domain(); ok {
		_spec.SetField(itemrecord.FieldDomain, field.TypeString, value)
		_node.Domain = value
	}
	if value, ok := _c.mutation.Discrimination(); ok {
		_spec.SetField(itemrecord.FieldDiscrimination, field.TypeFloat64, value)
		_node.Discrimination = value
	}
	if value, ok := _c.mutation.Difficulty(); ok {
		_spec.SetField(itemrecord.FieldDifficulty, field.TypeFloat64, value)
		_node.Difficulty = value
	}
	if value, ok := _c.mutation.Active(); ok {
		_spec.SetField(itemrecord.FieldActive, field.TypeBool, value)
		_node.Active = value
	}
	if value, ok := _c.mutation.UpdatedAt(); ok {
		_spec.SetField(itemrecord.FieldUpdatedAt, field.TypeTime, value)
		_node.UpdatedAt = value
	}
	return _node, _spec
}

// ItemRecordCreateBulk is the builder for creating many ItemRecord entities in bulk.
type ItemRecordCreateBulk struct {
	config
	err      error
	builders []*ItemRecordCreate
}

// Save creates the ItemRecord entities in the database.
func (_c *ItemRecordCreateBulk) Save(ctx context.Context) ([]*ItemRecord, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*ItemRecord, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*ItemRecordMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *ItemRecordCreateBulk) SaveX(ctx context.Context) []*ItemRecord {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *ItemRecordCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *ItemRecordCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
