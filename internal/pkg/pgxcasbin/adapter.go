// Package pgxcasbin provides a pgx-backed Casbin policy adapter.
package pgxcasbin

import (
	"context"
	"database/sql/driver"

	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
)

// Adapter stores and retrieves Casbin policies using pgx.
type Adapter struct {
	store *store
}

var (
	_ persist.Adapter             = (*Adapter)(nil)
	_ persist.ContextAdapter      = (*Adapter)(nil)
	_ persist.BatchAdapter        = (*Adapter)(nil)
	_ persist.ContextBatchAdapter = (*Adapter)(nil)
)

// Option configures a pgxcasbin Adapter.
type Option func(*Adapter)

// WithTableName overrides the default Casbin rule table name.
func WithTableName(tableName string) Option {
	return func(a *Adapter) {
		a.store.setTableName(tableName)
	}
}

// NewAdapter creates a pgx-backed Casbin adapter.
func NewAdapter(ctx context.Context, db interface {
	driver.Pinger
	Commander
}, opts ...Option) (*Adapter, error) {
	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	adapter := &Adapter{store: newStore(db)}
	for _, opt := range opts {
		opt(adapter)
	}

	return adapter, nil
}

// LoadPolicyCtx loads all policies into the model.
func (a *Adapter) LoadPolicyCtx(ctx context.Context, model model.Model) error {
	lines, err := a.store.selectAll(ctx)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if err := persist.LoadPolicyArray(line, model); err != nil {
			return err
		}
	}
	return nil
}

// SavePolicyCtx persists all policies from the model.
func (a *Adapter) SavePolicyCtx(ctx context.Context, model model.Model) error {
	var rules [][]string
	for _, section := range []string{"p", "g"} {
		for ptype, ast := range model[section] {
			for _, rule := range ast.Policy {
				rules = append(rules, genRule(ptype, rule))
			}
		}
	}
	return a.store.deleteAndInsertAll(ctx, rules)
}

// AddPolicyCtx adds a single policy rule.
func (a *Adapter) AddPolicyCtx(ctx context.Context, _ string, ptype string, rule []string) error {
	return a.store.insertRow(ctx, ptype, rule...)
}

// RemovePolicyCtx removes a single policy rule.
func (a *Adapter) RemovePolicyCtx(ctx context.Context, _ string, ptype string, rule []string) error {
	return a.store.deleteRow(ctx, ptype, rule...)
}

// RemoveFilteredPolicyCtx removes policy rules matching the filter.
func (a *Adapter) RemoveFilteredPolicyCtx(ctx context.Context, _ string, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.store.deleteWhere(ctx, ptype, fieldIndex, fieldValues...)
}

// AddPoliciesCtx adds multiple policy rules.
func (a *Adapter) AddPoliciesCtx(ctx context.Context, _ string, ptype string, rules [][]string) error {
	return a.store.batchInsert(ctx, ptype, rules)
}

// RemovePoliciesCtx removes multiple policy rules.
func (a *Adapter) RemovePoliciesCtx(ctx context.Context, _ string, ptype string, rules [][]string) error {
	return a.store.batchDelete(ctx, ptype, rules)
}

// LoadPolicy loads all policies into the model.
func (a *Adapter) LoadPolicy(model model.Model) error {
	return a.LoadPolicyCtx(context.Background(), model)
}

// SavePolicy persists all policies from the model.
func (a *Adapter) SavePolicy(model model.Model) error {
	return a.SavePolicyCtx(context.Background(), model)
}

// AddPolicy adds a single policy rule.
func (a *Adapter) AddPolicy(sec string, ptype string, rule []string) error {
	return a.AddPolicyCtx(context.Background(), sec, ptype, rule)
}

// RemovePolicy removes a single policy rule.
func (a *Adapter) RemovePolicy(sec string, ptype string, rule []string) error {
	return a.RemovePolicyCtx(context.Background(), sec, ptype, rule)
}

// RemoveFilteredPolicy removes policy rules matching the filter.
func (a *Adapter) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.RemoveFilteredPolicyCtx(context.Background(), sec, ptype, fieldIndex, fieldValues...)
}

// AddPolicies adds multiple policy rules.
func (a *Adapter) AddPolicies(sec string, ptype string, rules [][]string) error {
	return a.AddPoliciesCtx(context.Background(), sec, ptype, rules)
}

// RemovePolicies removes multiple policy rules.
func (a *Adapter) RemovePolicies(sec string, ptype string, rules [][]string) error {
	return a.RemovePoliciesCtx(context.Background(), sec, ptype, rules)
}
