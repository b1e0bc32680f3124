package catalog

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ListKeepsOrder(t *testing.T) {
	c := Default()
	rules := c.List()

	require.Len(t, rules, 6)
	assert.Equal(t, domain.RuleIncomeTax, rules[0].ID)
	assert.Equal(t, domain.RuleChildBudget, rules[5].ID)
	for _, r := range rules {
		assert.Equal(t, 2025, r.Year, "rule %s", r.ID)
		assert.NotEmpty(t, r.LegalReference, "rule %s", r.ID)
	}
}

func TestGet(t *testing.T) {
	c := Default()

	def, err := c.Get(domain.RuleHousingAllowance)
	require.NoError(t, err)
	assert.Equal(t, "Wet op de huurtoeslag 2014", def.LegalReference)
	assert.Equal(t, domain.CategoryBenefits, def.Category)

	_, err = c.Get("unknown_rule")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRuleNotFound))
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, domain.RuleID("unknown_rule"), nf.RuleID)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := Default()

	def, err := c.Get(domain.RuleHousingAllowance)
	require.NoError(t, err)
	def.DependencyIDs[0] = "tampered"

	again, err := c.Get(domain.RuleHousingAllowance)
	require.NoError(t, err)
	assert.Equal(t, domain.RuleIncomeTax, again.DependencyIDs[0])
}

func TestDependencyTree_NoDependencies(t *testing.T) {
	tree, err := Default().DependencyTree(domain.RuleIncomeTax)
	require.NoError(t, err)

	assert.Equal(t, domain.RuleIncomeTax, tree.RuleID)
	assert.NotNil(t, tree.DependsOn)
	assert.Empty(t, tree.DependsOn)
	assert.False(t, tree.Circular)
}

func TestDependencyTree_Nested(t *testing.T) {
	tree, err := Default().DependencyTree(domain.RuleHousingAllowance)
	require.NoError(t, err)

	require.Len(t, tree.DependsOn, 3)
	assert.Equal(t, domain.RuleIncomeTax, tree.DependsOn[0].RuleID)
	assert.Equal(t, domain.RuleAOWPremium, tree.DependsOn[1].RuleID)
	assert.Equal(t, domain.RuleWWPremium, tree.DependsOn[2].RuleID)

	// aow_premium -> income_tax is expanded again under its own branch
	require.Len(t, tree.DependsOn[1].DependsOn, 1)
	assert.Equal(t, domain.RuleIncomeTax, tree.DependsOn[1].DependsOn[0].RuleID)

	var walk func(n *domain.DependencyNode)
	walk = func(n *domain.DependencyNode) {
		assert.False(t, n.Circular, "node %s", n.RuleID)
		for _, child := range n.DependsOn {
			walk(child)
		}
	}
	walk(tree)
}

func TestDependencyTree_Unknown(t *testing.T) {
	_, err := Default().DependencyTree("nope")
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestDependencyTree_CycleIsMarked(t *testing.T) {
	c, err := New([]domain.RuleDefinition{
		{ID: "a", Name: "A", DependencyIDs: []domain.RuleID{"b"}},
		{ID: "b", Name: "B", DependencyIDs: []domain.RuleID{"c"}},
		{ID: "c", Name: "C", DependencyIDs: []domain.RuleID{"a"}},
	})
	require.NoError(t, err)

	tree, err := c.DependencyTree("a")
	require.NoError(t, err)

	b := tree.DependsOn[0]
	cNode := b.DependsOn[0]
	require.Len(t, cNode.DependsOn, 1)
	back := cNode.DependsOn[0]
	assert.Equal(t, domain.RuleID("a"), back.RuleID)
	assert.True(t, back.Circular)
	assert.Empty(t, back.DependsOn)
}

func TestDependencyTree_SelfLoop(t *testing.T) {
	c, err := New([]domain.RuleDefinition{
		{ID: "a", DependencyIDs: []domain.RuleID{"a"}},
	})
	require.NoError(t, err)

	tree, err := c.DependencyTree("a")
	require.NoError(t, err)
	require.Len(t, tree.DependsOn, 1)
	assert.True(t, tree.DependsOn[0].Circular)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		defs []domain.RuleDefinition
	}{
		{"empty id", []domain.RuleDefinition{{ID: ""}}},
		{"duplicate", []domain.RuleDefinition{{ID: "a"}, {ID: "a"}}},
		{"dangling dependency", []domain.RuleDefinition{{ID: "a", DependencyIDs: []domain.RuleID{"ghost"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs)
			assert.Error(t, err)
		})
	}
}

func TestDependents(t *testing.T) {
	c := Default()

	deps, err := c.Dependents(domain.RuleIncomeTax)
	require.NoError(t, err)
	assert.Equal(t, []domain.RuleID{
		domain.RuleAOWPremium,
		domain.RuleWWPremium,
		domain.RuleHousingAllowance,
		domain.RuleHealthcareSubsidy,
		domain.RuleChildBudget,
	}, deps)

	deps, err = c.Dependents(domain.RuleChildBudget)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestEvaluationOrder(t *testing.T) {
	c := Default()
	order := c.EvaluationOrder()
	require.Len(t, order, 6)

	seen := map[domain.RuleID]int{}
	for i, id := range order {
		seen[id] = i
	}
	for _, def := range c.List() {
		for _, dep := range def.DependencyIDs {
			assert.Less(t, seen[dep], seen[def.ID], "%s must come after %s", def.ID, dep)
		}
	}
}

func TestEvaluationOrder_CycleAppended(t *testing.T) {
	c := MustNew([]domain.RuleDefinition{
		{ID: "x"},
		{ID: "a", DependencyIDs: []domain.RuleID{"b"}},
		{ID: "b", DependencyIDs: []domain.RuleID{"a"}},
	})
	assert.Equal(t, []domain.RuleID{"x", "a", "b"}, c.EvaluationOrder())
}
