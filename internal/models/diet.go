package models

import "time"

// MealType is an optional label for when a meal was eaten.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// FoodUnit is the unit a food's nutrition values are expressed in.
type FoodUnit string

const (
	UnitGram FoodUnit = "g"
	UnitTbsp FoodUnit = "tbsp"
)

// NutritionTotals are macro totals for one serving, item, meal, or day.
type NutritionTotals struct {
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	FatG         float64 `json:"fat_g"`
	CarbsG       float64 `json:"carbs_g"`
	FiberG       float64 `json:"fiber_g"`
	SugarG       float64 `json:"sugar_g"`
	SodiumMg     float64 `json:"sodium_mg"`
	NetCarbsG    float64 `json:"net_carbs_g"`
}

// SavedFoodServing is a named portion of a saved food, e.g. "1 tbsp".
type SavedFoodServing struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Unit   FoodUnit `json:"unit"`
	Amount float64  `json:"amount"`
}

// SavedFood is a reusable food definition. NutrientsPerUnit is per one
// BaseUnit (per 1 g or per 1 tbsp). GramsPerTbsp, when set, allows
// converting servings between the two units.
type SavedFood struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	BaseUnit         FoodUnit           `json:"base_unit"`
	GramsPerTbsp     float64            `json:"grams_per_tbsp,omitempty"`
	NutrientsPerUnit NutritionTotals    `json:"nutrients_per_unit"`
	Servings         []SavedFoodServing `json:"servings"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// MealItemSnapshot freezes the computed amounts for a meal item so later
// edits to the saved food do not rewrite history.
type MealItemSnapshot struct {
	BaseUnits float64         `json:"base_units"`
	Totals    NutritionTotals `json:"totals"`
}

// MealItem is one food portion inside a meal entry.
type MealItem struct {
	ID            string           `json:"id"`
	SavedFoodID   string           `json:"saved_food_id"`
	SavedFoodName string           `json:"saved_food_name"`
	ServingID     string           `json:"serving_id"`
	ServingLabel  string           `json:"serving_label"`
	Unit          FoodUnit         `json:"unit"`
	Quantity      float64          `json:"quantity"`
	Snapshot      MealItemSnapshot `json:"snapshot"`
}

// MealEntry is a logged meal with item-level and meal-level totals.
type MealEntry struct {
	ID        string          `json:"id"`
	DateTime  time.Time       `json:"date_time"`
	MealType  MealType        `json:"meal_type,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Items     []MealItem      `json:"items"`
	Totals    NutritionTotals `json:"totals"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
