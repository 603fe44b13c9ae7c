// Package diet manages saved foods and meal entries, including unit
// conversion between grams and tablespoons and nutrition totals.
package diet

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfeller/vitalog/internal/models"
)

// ErrFoodNotFound is returned when a meal references an unknown food or serving.
var ErrFoodNotFound = errors.New("saved food not found")

// ValidationError reports invalid diet input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func newValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// Store is the document store diet data lives in.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// Service provides saved-food and meal-entry operations.
type Service struct {
	store Store
}

// NewService creates a diet service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateSavedFood is the input for defining a reusable food.
type CreateSavedFood struct {
	Name             string
	BaseUnit         models.FoodUnit
	GramsPerTbsp     float64
	NutrientsPerUnit models.NutritionTotals
	Servings         []models.SavedFoodServing
}

// CreateMealItem references a saved food serving and a quantity of it.
type CreateMealItem struct {
	SavedFoodID string
	ServingID   string
	Quantity    float64
}

// CreateMealEntry is the input for logging a meal.
type CreateMealEntry struct {
	DateTime time.Time
	MealType models.MealType
	Notes    string
	Items    []CreateMealItem
}

// ListSavedFoods returns all saved foods sorted by name.
func (s *Service) ListSavedFoods(ctx context.Context) ([]models.SavedFood, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	foods := make([]models.SavedFood, len(doc.SavedFoods))
	copy(foods, doc.SavedFoods)
	sort.Slice(foods, func(i, j int) bool {
		return strings.ToLower(foods[i].Name) < strings.ToLower(foods[j].Name)
	})
	return foods, nil
}

// AddSavedFood validates and persists a new food definition. When no
// servings are given, defaults are derived from the base unit and density.
func (s *Service) AddSavedFood(ctx context.Context, in CreateSavedFood) (*models.SavedFood, error) {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "food name is required")
	}
	if in.BaseUnit != models.UnitGram && in.BaseUnit != models.UnitTbsp {
		problems = append(problems, "food base unit is required")
	}
	if in.GramsPerTbsp < 0 {
		problems = append(problems, "grams per tbsp must not be negative")
	}
	for _, sv := range in.Servings {
		if strings.TrimSpace(sv.Label) == "" {
			problems = append(problems, "serving label is required")
		}
		if sv.Unit != models.UnitGram && sv.Unit != models.UnitTbsp {
			problems = append(problems, "serving unit is required")
		}
		if sv.Amount <= 0 {
			problems = append(problems, "serving amount must be > 0")
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	now := time.Now().UTC()
	servings := in.Servings
	if len(servings) == 0 {
		servings = defaultServingsFor(in.BaseUnit, in.GramsPerTbsp)
	}
	for i := range servings {
		if servings[i].ID == "" {
			servings[i].ID = uuid.NewString()
		}
		servings[i].Label = strings.TrimSpace(servings[i].Label)
	}

	food := models.SavedFood{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		BaseUnit:         in.BaseUnit,
		GramsPerTbsp:     in.GramsPerTbsp,
		NutrientsPerUnit: normalizeTotals(in.NutrientsPerUnit),
		Servings:         servings,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.SavedFoods = append(doc.SavedFoods, food)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &food, nil
}

// AddCustomServing appends a named portion to an existing saved food.
func (s *Service) AddCustomServing(ctx context.Context, savedFoodID, label string, unit models.FoodUnit, amount float64) (*models.SavedFood, error) {
	var problems []string
	if savedFoodID == "" {
		problems = append(problems, "saved food ID is required")
	}
	if strings.TrimSpace(label) == "" {
		problems = append(problems, "serving label is required")
	}
	if unit != models.UnitGram && unit != models.UnitTbsp {
		problems = append(problems, "serving unit is required")
	}
	if amount <= 0 {
		problems = append(problems, "serving amount must be > 0")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.SavedFoods {
		if doc.SavedFoods[i].ID != savedFoodID {
			continue
		}
		doc.SavedFoods[i].Servings = append(doc.SavedFoods[i].Servings, models.SavedFoodServing{
			ID:     uuid.NewString(),
			Label:  strings.TrimSpace(label),
			Unit:   unit,
			Amount: amount,
		})
		doc.SavedFoods[i].UpdatedAt = time.Now().UTC()
		food := doc.SavedFoods[i]
		if err := s.store.Save(ctx, doc); err != nil {
			return nil, err
		}
		return &food, nil
	}
	return nil, ErrFoodNotFound
}

// AddMeal validates the input, snapshots each item's converted amounts
// and scaled totals, and persists the meal.
func (s *Service) AddMeal(ctx context.Context, in CreateMealEntry) (*models.MealEntry, error) {
	var problems []string
	if in.DateTime.IsZero() {
		problems = append(problems, "meal date/time is required")
	}
	if len(in.Items) == 0 {
		problems = append(problems, "at least one meal item is required")
	}
	for _, it := range in.Items {
		if it.SavedFoodID == "" {
			problems = append(problems, "meal item food is required")
		}
		if it.ServingID == "" {
			problems = append(problems, "meal item serving is required")
		}
		if it.Quantity <= 0 {
			problems = append(problems, "meal item quantity must be > 0")
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	items, totals, err := buildMealItems(doc, in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	meal := models.MealEntry{
		ID:        uuid.NewString(),
		DateTime:  in.DateTime,
		MealType:  in.MealType,
		Notes:     strings.TrimSpace(in.Notes),
		Items:     items,
		Totals:    totals,
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc.MealEntries = append(doc.MealEntries, meal)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &meal, nil
}

// DeleteMeal removes a meal by id, reporting false when absent.
func (s *Service) DeleteMeal(ctx context.Context, id string) (bool, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range doc.MealEntries {
		if doc.MealEntries[i].ID == id {
			doc.MealEntries = append(doc.MealEntries[:i], doc.MealEntries[i+1:]...)
			if err := s.store.Save(ctx, doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// MealsForDay returns meals whose local-time date matches day, newest first.
func (s *Service) MealsForDay(ctx context.Context, day time.Time) ([]models.MealEntry, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var meals []models.MealEntry
	for _, m := range doc.MealEntries {
		local := m.DateTime.In(day.Location())
		if !local.Before(start) && local.Before(end) {
			meals = append(meals, m)
		}
	}
	sort.Slice(meals, func(i, j int) bool {
		return meals[i].DateTime.After(meals[j].DateTime)
	})
	return meals, nil
}

// DailyTotals aggregates meal totals into one day-level figure.
func (s *Service) DailyTotals(meals []models.MealEntry) models.NutritionTotals {
	totals := make([]models.NutritionTotals, len(meals))
	for i, m := range meals {
		totals[i] = m.Totals
	}
	return sumTotals(totals)
}

func buildMealItems(doc *models.Document, in CreateMealEntry) ([]models.MealItem, models.NutritionTotals, error) {
	var items []models.MealItem

	for _, it := range in.Items {
		var food *models.SavedFood
		for i := range doc.SavedFoods {
			if doc.SavedFoods[i].ID == it.SavedFoodID {
				food = &doc.SavedFoods[i]
				break
			}
		}
		if food == nil {
			return nil, models.NutritionTotals{}, ErrFoodNotFound
		}

		var serving *models.SavedFoodServing
		for i := range food.Servings {
			if food.Servings[i].ID == it.ServingID {
				serving = &food.Servings[i]
				break
			}
		}
		if serving == nil {
			return nil, models.NutritionTotals{}, ErrFoodNotFound
		}

		usedUnits := serving.Amount * it.Quantity
		baseUnits, err := toBaseUnits(food, serving.Unit, usedUnits)
		if err != nil {
			return nil, models.NutritionTotals{}, err
		}

		items = append(items, models.MealItem{
			ID:            uuid.NewString(),
			SavedFoodID:   food.ID,
			SavedFoodName: food.Name,
			ServingID:     serving.ID,
			ServingLabel:  serving.Label,
			Unit:          serving.Unit,
			Quantity:      it.Quantity,
			Snapshot: models.MealItemSnapshot{
				BaseUnits: baseUnits,
				Totals:    scaleFoodTotals(food, baseUnits),
			},
		})
	}

	itemTotals := make([]models.NutritionTotals, len(items))
	for i, it := range items {
		itemTotals[i] = it.Snapshot.Totals
	}
	return items, sumTotals(itemTotals), nil
}

func defaultServingsFor(baseUnit models.FoodUnit, gramsPerTbsp float64) []models.SavedFoodServing {
	var servings []models.SavedFoodServing

	if baseUnit == models.UnitGram {
		servings = append(servings, models.SavedFoodServing{Label: "100 g", Unit: models.UnitGram, Amount: 100})
		if gramsPerTbsp > 0 {
			servings = append(servings, models.SavedFoodServing{Label: "1 tbsp", Unit: models.UnitTbsp, Amount: 1})
		}
		return servings
	}

	servings = append(servings, models.SavedFoodServing{Label: "1 tbsp", Unit: models.UnitTbsp, Amount: 1})
	if gramsPerTbsp > 0 {
		servings = append(servings, models.SavedFoodServing{Label: "100 g", Unit: models.UnitGram, Amount: 100})
	}
	return servings
}
