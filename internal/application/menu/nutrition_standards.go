package menu

import (
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/menu"
)

// DefaultTolerance is the multiplicative tolerance band applied when a
// compliance check does not specify one (±10%).
var DefaultTolerance = decimal.NewFromFloat(0.10)

// mealTypeStandards holds per-portion nutrient targets per meal type,
// derived from the Indonesian AKG daily reference for school-age children:
// lunch covers roughly a third of daily needs, breakfast a quarter, and a
// snack a tenth. Calories in kcal, sodium in mg, the rest in grams.
var mealTypeStandards = map[menu.MealType]menu.NutritionStandard{
	menu.MealTypeBreakfast: {
		Calories: decimal.NewFromInt(525),
		Protein:  decimal.NewFromInt(15),
		Carbs:    decimal.NewFromInt(70),
		Fat:      decimal.NewFromInt(18),
		Fiber:    decimal.NewFromInt(6),
		Sodium:   decimal.NewFromInt(450),
		Sugar:    decimal.NewFromInt(15),
	},
	menu.MealTypeLunch: {
		Calories: decimal.NewFromInt(700),
		Protein:  decimal.NewFromInt(20),
		Carbs:    decimal.NewFromInt(95),
		Fat:      decimal.NewFromInt(23),
		Fiber:    decimal.NewFromInt(8),
		Sodium:   decimal.NewFromInt(600),
		Sugar:    decimal.NewFromInt(20),
	},
	menu.MealTypeSnack: {
		Calories: decimal.NewFromInt(200),
		Protein:  decimal.NewFromInt(5),
		Carbs:    decimal.NewFromInt(30),
		Fat:      decimal.NewFromInt(7),
		Fiber:    decimal.NewFromInt(2),
		Sodium:   decimal.NewFromInt(200),
		Sugar:    decimal.NewFromInt(10),
	},
}

// StandardForMealType returns the nutrient targets for a meal type
func StandardForMealType(mealType menu.MealType) (menu.NutritionStandard, bool) {
	standard, ok := mealTypeStandards[mealType]
	return standard, ok
}
