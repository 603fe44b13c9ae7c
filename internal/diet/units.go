package diet

import (
	"math"

	"github.com/mfeller/vitalog/internal/models"
)

// toBaseUnits converts an amount expressed in unit into the food's base
// unit. Converting between g and tbsp requires the food's grams-per-tbsp
// density.
func toBaseUnits(food *models.SavedFood, unit models.FoodUnit, amount float64) (float64, error) {
	if unit == food.BaseUnit {
		return amount, nil
	}

	gpt := food.GramsPerTbsp
	if gpt <= 0 || math.IsNaN(gpt) || math.IsInf(gpt, 0) {
		return 0, newValidationError("cannot convert between g and tbsp without grams-per-tbsp for this food")
	}

	if food.BaseUnit == models.UnitGram && unit == models.UnitTbsp {
		return amount * gpt, nil
	}
	if food.BaseUnit == models.UnitTbsp && unit == models.UnitGram {
		return amount / gpt, nil
	}
	return 0, newValidationError("unsupported unit conversion")
}

// scaleFoodTotals multiplies a food's per-unit nutrition by baseUnits.
// Net carbs are recomputed from the scaled carbs and fiber, floored at 0.
func scaleFoodTotals(food *models.SavedFood, baseUnits float64) models.NutritionTotals {
	factor := baseUnits
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		factor = 0
	}

	per := food.NutrientsPerUnit
	carbs := per.CarbsG * factor
	fiber := per.FiberG * factor

	return models.NutritionTotals{
		CaloriesKcal: per.CaloriesKcal * factor,
		ProteinG:     per.ProteinG * factor,
		FatG:         per.FatG * factor,
		CarbsG:       carbs,
		FiberG:       fiber,
		SugarG:       per.SugarG * factor,
		SodiumMg:     per.SodiumMg * factor,
		NetCarbsG:    math.Max(0, carbs-fiber),
	}
}

// sumTotals adds up totals, recomputing net carbs from the sums.
func sumTotals(totals []models.NutritionTotals) models.NutritionTotals {
	var sum models.NutritionTotals
	for _, t := range totals {
		sum.CaloriesKcal += safeNumber(t.CaloriesKcal)
		sum.ProteinG += safeNumber(t.ProteinG)
		sum.FatG += safeNumber(t.FatG)
		sum.CarbsG += safeNumber(t.CarbsG)
		sum.FiberG += safeNumber(t.FiberG)
		sum.SugarG += safeNumber(t.SugarG)
		sum.SodiumMg += safeNumber(t.SodiumMg)
	}
	sum.NetCarbsG = math.Max(0, sum.CarbsG-sum.FiberG)
	return sum
}

// normalizeTotals replaces non-finite values with zero and floors net carbs.
func normalizeTotals(t models.NutritionTotals) models.NutritionTotals {
	return models.NutritionTotals{
		CaloriesKcal: safeNumber(t.CaloriesKcal),
		ProteinG:     safeNumber(t.ProteinG),
		FatG:         safeNumber(t.FatG),
		CarbsG:       safeNumber(t.CarbsG),
		FiberG:       safeNumber(t.FiberG),
		SugarG:       safeNumber(t.SugarG),
		SodiumMg:     safeNumber(t.SodiumMg),
		NetCarbsG:    math.Max(0, safeNumber(t.NetCarbsG)),
	}
}

func safeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
