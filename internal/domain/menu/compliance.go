package menu

import (
	"github.com/shopspring/decimal"
)

// NutrientCheck describes how one nutrient is evaluated against its target.
// Floor nutrients (protein, fiber) only need to reach the lower bound; capped
// nutrients (sodium, sugar, fat, calories) must also stay under the upper bound.
type NutrientCheck struct {
	Nutrient string
	Target   decimal.Decimal
	Capped   bool
}

// ComplianceIssue reports a nutrient that falls outside its tolerance band
type ComplianceIssue struct {
	Nutrient string          `json:"nutrient"`
	Target   decimal.Decimal `json:"target"`
	Actual   decimal.Decimal `json:"actual"`
	Reason   string          `json:"reason"` // "below_minimum" or "above_maximum"
}

// NutritionStandard holds the per-portion nutrient targets for one age band or
// target group. Zero targets are not evaluated.
type NutritionStandard struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
	Fiber    decimal.Decimal `json:"fiber"`
	Sodium   decimal.Decimal `json:"sodium"`
	Sugar    decimal.Decimal `json:"sugar"`
}

// CheckCompliance evaluates the menu's nutrition facts against a standard with
// the given tolerance (e.g. 0.1 for ±10%). Floor nutrients pass when the value
// reaches target×(1−tolerance); capped nutrients must also stay at or below
// target×(1+tolerance). Nutrients with a zero target are skipped. An empty
// result means the menu complies.
func (m *Menu) CheckCompliance(standard NutritionStandard, tolerance decimal.Decimal) []ComplianceIssue {
	checks := []struct {
		check  NutrientCheck
		actual decimal.Decimal
	}{
		{NutrientCheck{"calories", standard.Calories, true}, m.Nutrition.Calories},
		{NutrientCheck{"protein", standard.Protein, false}, m.Nutrition.Protein},
		{NutrientCheck{"carbs", standard.Carbs, true}, m.Nutrition.Carbs},
		{NutrientCheck{"fat", standard.Fat, true}, m.Nutrition.Fat},
		{NutrientCheck{"fiber", standard.Fiber, false}, m.Nutrition.Fiber},
		{NutrientCheck{"sodium", standard.Sodium, true}, m.Nutrition.Sodium},
		{NutrientCheck{"sugar", standard.Sugar, true}, m.Nutrition.Sugar},
	}

	one := decimal.NewFromInt(1)
	var issues []ComplianceIssue
	for _, c := range checks {
		if c.check.Target.IsZero() {
			continue
		}

		min := c.check.Target.Mul(one.Sub(tolerance))
		if c.actual.LessThan(min) {
			issues = append(issues, ComplianceIssue{
				Nutrient: c.check.Nutrient,
				Target:   c.check.Target,
				Actual:   c.actual,
				Reason:   "below_minimum",
			})
			continue
		}

		if c.check.Capped {
			max := c.check.Target.Mul(one.Add(tolerance))
			if c.actual.GreaterThan(max) {
				issues = append(issues, ComplianceIssue{
					Nutrient: c.check.Nutrient,
					Target:   c.check.Target,
					Actual:   c.actual,
					Reason:   "above_maximum",
				})
			}
		}
	}

	return issues
}

// IsCompliant returns true if the menu has no compliance issues against the standard
func (m *Menu) IsCompliant(standard NutritionStandard, tolerance decimal.Decimal) bool {
	return len(m.CheckCompliance(standard, tolerance)) == 0
}
