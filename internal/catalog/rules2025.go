package catalog

import "github.com/rgehrsitz/rulescalc/internal/domain"

// Definitions2025 returns the rule metadata for the 2025 fiscal year.
func Definitions2025() []domain.RuleDefinition {
	return []domain.RuleDefinition{
		{
			ID:             domain.RuleIncomeTax,
			Name:           "Dutch Income Tax (Inkomstenbelasting)",
			LegalReference: "Wet inkomstenbelasting 2001",
			Category:       domain.CategoryTax,
			Year:           2025,
			Description:    "Progressive income tax on taxable earnings",
			URL:            "https://www.belastingdienst.nl",
			Impact:         "primary - affects all other benefits",
		},
		{
			ID:             domain.RuleAOWPremium,
			Name:           "AOW Premium (State Pension)",
			LegalReference: "Algemene Ouderdomswet",
			Category:       domain.CategorySocialSecurity,
			Year:           2025,
			Description:    "Mandatory contribution for state pension",
			Impact:         "deduction from income",
			DependencyIDs:  []domain.RuleID{domain.RuleIncomeTax},
		},
		{
			ID:             domain.RuleWWPremium,
			Name:           "WW Premium (Unemployment)",
			LegalReference: "Werkloosheidswet",
			Category:       domain.CategorySocialSecurity,
			Year:           2025,
			Description:    "Unemployment insurance contribution",
			Impact:         "deduction from income",
			DependencyIDs:  []domain.RuleID{domain.RuleIncomeTax},
		},
		{
			ID:             domain.RuleHousingAllowance,
			Name:           "Housing Allowance (Huurtoeslag)",
			LegalReference: "Wet op de huurtoeslag 2014",
			Category:       domain.CategoryBenefits,
			Year:           2025,
			Description:    "Means-tested housing assistance for renters",
			URL:            "https://www.toeslagen.nl/huurtoeslag",
			Impact:         "depends on income_tax, has income threshold",
			DependencyIDs:  []domain.RuleID{domain.RuleIncomeTax, domain.RuleAOWPremium, domain.RuleWWPremium},
		},
		{
			ID:             domain.RuleHealthcareSubsidy,
			Name:           "Healthcare Subsidy (Zorgtoeslag)",
			LegalReference: "Zorgverzekeringswet",
			Category:       domain.CategoryBenefits,
			Year:           2025,
			Description:    "Healthcare cost assistance for lower incomes",
			URL:            "https://www.toeslagen.nl/zorgtoeslag",
			Impact:         "depends on income_tax, has income threshold",
			DependencyIDs:  []domain.RuleID{domain.RuleIncomeTax},
		},
		{
			ID:             domain.RuleChildBudget,
			Name:           "Child Benefits (Kindgebonden Budget)",
			LegalReference: "Wet op het kindgebonden budget",
			Category:       domain.CategoryBenefits,
			Year:           2025,
			Description:    "Monthly allowance per dependent child",
			URL:            "https://www.toeslagen.nl/kindgebonden-budget",
			Impact:         "depends on income_tax, per child",
			DependencyIDs:  []domain.RuleID{domain.RuleIncomeTax},
		},
	}
}

// Default returns the 2025 catalog.
func Default() *Catalog {
	return MustNew(Definitions2025())
}
