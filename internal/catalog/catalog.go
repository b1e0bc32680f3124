// Package catalog holds the static rule metadata and the dependency graph
// between rules.
package catalog

import (
	"fmt"

	"github.com/rgehrsitz/rulescalc/internal/domain"
)

// Catalog is an immutable lookup of rule definitions keyed by id.
type Catalog struct {
	order []domain.RuleID
	rules map[domain.RuleID]domain.RuleDefinition
}

// New builds a catalog from definitions. Definition order is kept for List.
// Duplicate ids and dependencies on unknown rules are rejected; cycles are not,
// DependencyTree marks them instead.
func New(defs []domain.RuleDefinition) (*Catalog, error) {
	c := &Catalog{
		order: make([]domain.RuleID, 0, len(defs)),
		rules: make(map[domain.RuleID]domain.RuleDefinition, len(defs)),
	}
	for _, def := range defs {
		if def.ID == "" {
			return nil, &domain.InvalidInputError{Field: "id", Reason: "rule id is required"}
		}
		if _, dup := c.rules[def.ID]; dup {
			return nil, &domain.InvalidInputError{Field: "id", Reason: fmt.Sprintf("duplicate rule id %q", def.ID)}
		}
		def.DependencyIDs = append([]domain.RuleID(nil), def.DependencyIDs...)
		c.rules[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	for _, id := range c.order {
		for _, dep := range c.rules[id].DependencyIDs {
			if _, ok := c.rules[dep]; !ok {
				return nil, fmt.Errorf("rule %q depends on unknown rule: %w", id, &domain.NotFoundError{RuleID: dep})
			}
		}
	}
	return c, nil
}

// MustNew is New for static tables; it panics on error.
func MustNew(defs []domain.RuleDefinition) *Catalog {
	c, err := New(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every rule definition in catalog order.
func (c *Catalog) List() []domain.RuleDefinition {
	out := make([]domain.RuleDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.copyOf(id))
	}
	return out
}

// Get returns the definition of id or a *domain.NotFoundError.
func (c *Catalog) Get(id domain.RuleID) (domain.RuleDefinition, error) {
	if _, ok := c.rules[id]; !ok {
		return domain.RuleDefinition{}, &domain.NotFoundError{RuleID: id}
	}
	return c.copyOf(id), nil
}

// Name returns the display name of id, or the id itself when unknown.
func (c *Catalog) Name(id domain.RuleID) string {
	if def, ok := c.rules[id]; ok {
		return def.Name
	}
	return string(id)
}

// Dependencies returns the direct dependency definitions of id.
func (c *Catalog) Dependencies(id domain.RuleID) ([]domain.RuleDefinition, error) {
	def, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RuleDefinition, 0, len(def.DependencyIDs))
	for _, dep := range def.DependencyIDs {
		out = append(out, c.copyOf(dep))
	}
	return out, nil
}

// Dependents returns the ids of rules that depend directly on id, in catalog
// order.
func (c *Catalog) Dependents(id domain.RuleID) ([]domain.RuleID, error) {
	if _, ok := c.rules[id]; !ok {
		return nil, &domain.NotFoundError{RuleID: id}
	}
	out := []domain.RuleID{}
	for _, other := range c.order {
		for _, dep := range c.rules[other].DependencyIDs {
			if dep == id {
				out = append(out, other)
				break
			}
		}
	}
	return out, nil
}

// DependencyTree expands the dependencies of id recursively. A rule that
// appears again on its own ancestor path becomes a Circular leaf. Sibling
// branches never share state, so a diamond is expanded on both sides.
func (c *Catalog) DependencyTree(id domain.RuleID) (*domain.DependencyNode, error) {
	if _, ok := c.rules[id]; !ok {
		return nil, &domain.NotFoundError{RuleID: id}
	}
	return c.walk(id, nil), nil
}

// path is an immutable linked list of ancestor ids.
type path struct {
	id     domain.RuleID
	parent *path
}

func (p *path) contains(id domain.RuleID) bool {
	for n := p; n != nil; n = n.parent {
		if n.id == id {
			return true
		}
	}
	return false
}

func (c *Catalog) walk(id domain.RuleID, ancestors *path) *domain.DependencyNode {
	if ancestors.contains(id) {
		return &domain.DependencyNode{RuleID: id, Circular: true, DependsOn: []*domain.DependencyNode{}}
	}
	here := &path{id: id, parent: ancestors}
	def := c.rules[id]
	node := &domain.DependencyNode{
		RuleID:    id,
		RuleName:  def.Name,
		DependsOn: make([]*domain.DependencyNode, 0, len(def.DependencyIDs)),
	}
	for _, dep := range def.DependencyIDs {
		node.DependsOn = append(node.DependsOn, c.walk(dep, here))
	}
	return node
}

// EvaluationOrder returns the rule ids ordered so that every rule comes after
// its dependencies. Ties keep catalog order. Rules caught in a cycle are
// appended at the end in catalog order.
func (c *Catalog) EvaluationOrder() []domain.RuleID {
	pending := make(map[domain.RuleID]int, len(c.order))
	for _, id := range c.order {
		pending[id] = len(c.rules[id].DependencyIDs)
	}

	out := make([]domain.RuleID, 0, len(c.order))
	done := make(map[domain.RuleID]bool, len(c.order))
	for len(out) < len(c.order) {
		ready := []domain.RuleID{}
		for _, id := range c.order {
			if !done[id] && pending[id] == 0 {
				ready = append(ready, id)
			}
		}
		if len(ready) == 0 {
			break
		}
		for _, id := range ready {
			done[id] = true
			out = append(out, id)
			for _, other := range c.order {
				for _, dep := range c.rules[other].DependencyIDs {
					if dep == id {
						pending[other]--
					}
				}
			}
		}
	}
	for _, id := range c.order {
		if !done[id] {
			out = append(out, id)
		}
	}
	return out
}

func (c *Catalog) copyOf(id domain.RuleID) domain.RuleDefinition {
	def := c.rules[id]
	def.DependencyIDs = append([]domain.RuleID{}, def.DependencyIDs...)
	return def
}
