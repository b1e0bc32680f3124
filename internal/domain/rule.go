package domain

// RuleID identifies a rule in the catalog.
type RuleID string

// Rule ids for the 2025 fiscal year.
const (
	RuleIncomeTax         RuleID = "income_tax"
	RuleAOWPremium        RuleID = "aow_premium"
	RuleWWPremium         RuleID = "ww_premium"
	RuleHousingAllowance  RuleID = "huurtoeslag"
	RuleHealthcareSubsidy RuleID = "zorgtoeslag"
	RuleChildBudget       RuleID = "kindgebonden_budget"
)

// Category groups rules by the kind of legislation they come from.
type Category string

const (
	CategoryTax            Category = "tax"
	CategorySocialSecurity Category = "social_security"
	CategoryBenefits       Category = "benefits"
)

// RuleDefinition is the static metadata of one rule.
type RuleDefinition struct {
	ID             RuleID   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	LegalReference string   `yaml:"legal_reference" json:"legal_reference"`
	Category       Category `yaml:"category" json:"category"`
	Year           int      `yaml:"year" json:"year"`
	Description    string   `yaml:"description" json:"description"`
	URL            string   `yaml:"url" json:"url"`
	Impact         string   `yaml:"impact" json:"impact"`
	DependencyIDs  []RuleID `yaml:"dependencies" json:"dependencies"`
}

// DependencyNode is one node of a rule's dependency tree. A node marked
// Circular was reached again along its own ancestor path and is not expanded.
type DependencyNode struct {
	RuleID    RuleID            `json:"rule_id"`
	RuleName  string            `json:"rule_name,omitempty"`
	Circular  bool              `json:"circular,omitempty"`
	DependsOn []*DependencyNode `json:"depends_on"`
}
