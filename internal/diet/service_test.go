package diet

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

type memStore struct {
	doc *models.Document
}

func (m *memStore) Load(ctx context.Context) (*models.Document, error) { return m.doc, nil }
func (m *memStore) Save(ctx context.Context, doc *models.Document) error {
	m.doc = doc
	return nil
}

func newMemService() (*Service, *memStore) {
	store := &memStore{doc: models.NewDocument()}
	return NewService(store), store
}

func addTestFood(t *testing.T, svc *Service) *models.SavedFood {
	t.Helper()
	food, err := svc.AddSavedFood(context.Background(), CreateSavedFood{
		Name:         "peanut butter",
		BaseUnit:     models.UnitGram,
		GramsPerTbsp: 16,
		NutrientsPerUnit: models.NutritionTotals{
			CaloriesKcal: 6, ProteinG: 0.25, FatG: 0.5, CarbsG: 0.2, FiberG: 0.06,
		},
	})
	if err != nil {
		t.Fatalf("AddSavedFood: %v", err)
	}
	return food
}

func TestAddSavedFoodDefaultServings(t *testing.T) {
	svc, _ := newMemService()
	food := addTestFood(t, svc)

	if len(food.Servings) != 2 {
		t.Fatalf("servings = %d, want gram default plus tbsp via density", len(food.Servings))
	}
	if food.Servings[0].Label != "100 g" || food.Servings[1].Label != "1 tbsp" {
		t.Errorf("serving labels = %q, %q", food.Servings[0].Label, food.Servings[1].Label)
	}
	for _, sv := range food.Servings {
		if sv.ID == "" {
			t.Error("servings must get generated IDs")
		}
	}
}

func TestAddSavedFoodNoTbspServingWithoutDensity(t *testing.T) {
	svc, _ := newMemService()
	food, err := svc.AddSavedFood(context.Background(), CreateSavedFood{
		Name:     "chicken breast",
		BaseUnit: models.UnitGram,
	})
	if err != nil {
		t.Fatalf("AddSavedFood: %v", err)
	}
	if len(food.Servings) != 1 || food.Servings[0].Unit != models.UnitGram {
		t.Errorf("servings = %+v, want gram serving only", food.Servings)
	}
}

func TestAddSavedFoodValidation(t *testing.T) {
	svc, _ := newMemService()
	_, err := svc.AddSavedFood(context.Background(), CreateSavedFood{Name: "  ", BaseUnit: "cup"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(ve.Problems) != 2 {
		t.Errorf("problems = %v, want name and unit reported", ve.Problems)
	}
}

func TestAddCustomServing(t *testing.T) {
	svc, _ := newMemService()
	food := addTestFood(t, svc)

	updated, err := svc.AddCustomServing(context.Background(), food.ID, "big spoon", models.UnitTbsp, 1.5)
	if err != nil {
		t.Fatalf("AddCustomServing: %v", err)
	}
	last := updated.Servings[len(updated.Servings)-1]
	if last.Label != "big spoon" || last.Amount != 1.5 {
		t.Errorf("new serving = %+v", last)
	}

	if _, err := svc.AddCustomServing(context.Background(), "missing", "x", models.UnitGram, 1); !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("err = %v, want ErrFoodNotFound", err)
	}
}

func TestAddMealSnapshotsTotals(t *testing.T) {
	svc, store := newMemService()
	food := addTestFood(t, svc)

	var tbsp *models.SavedFoodServing
	for i := range food.Servings {
		if food.Servings[i].Unit == models.UnitTbsp {
			tbsp = &food.Servings[i]
		}
	}
	if tbsp == nil {
		t.Fatal("expected a tbsp serving")
	}

	meal, err := svc.AddMeal(context.Background(), CreateMealEntry{
		DateTime: time.Now(),
		MealType: models.MealBreakfast,
		Items: []CreateMealItem{
			{SavedFoodID: food.ID, ServingID: tbsp.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("AddMeal: %v", err)
	}

	item := meal.Items[0]
	// 2 tbsp at 16 g/tbsp is 32 g of a per-gram food.
	if item.Snapshot.BaseUnits != 32 {
		t.Errorf("base units = %g, want 32", item.Snapshot.BaseUnits)
	}
	if math.Abs(item.Snapshot.Totals.CaloriesKcal-192) > 1e-9 {
		t.Errorf("calories = %g, want 192", item.Snapshot.Totals.CaloriesKcal)
	}
	if meal.Totals != item.Snapshot.Totals {
		t.Error("meal totals must equal the sum of item totals")
	}
	if len(store.doc.MealEntries) != 1 {
		t.Error("meal was not persisted")
	}
}

func TestAddMealUnknownFood(t *testing.T) {
	svc, _ := newMemService()
	_, err := svc.AddMeal(context.Background(), CreateMealEntry{
		DateTime: time.Now(),
		Items:    []CreateMealItem{{SavedFoodID: "missing", ServingID: "s", Quantity: 1}},
	})
	if !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("err = %v, want ErrFoodNotFound", err)
	}
}

func TestMealsForDayFiltersAndSorts(t *testing.T) {
	svc, _ := newMemService()
	food := addTestFood(t, svc)
	serving := food.Servings[0]
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, dt := range []time.Time{
		day.Add(8 * time.Hour),
		day.Add(19 * time.Hour),
		day.AddDate(0, 0, 1).Add(8 * time.Hour), // next day, excluded
	} {
		_, err := svc.AddMeal(ctx, CreateMealEntry{
			DateTime: dt,
			Items:    []CreateMealItem{{SavedFoodID: food.ID, ServingID: serving.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("AddMeal: %v", err)
		}
	}

	meals, err := svc.MealsForDay(ctx, day)
	if err != nil {
		t.Fatalf("MealsForDay: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("meals = %d, want 2", len(meals))
	}
	if !meals[0].DateTime.After(meals[1].DateTime) {
		t.Error("meals not sorted newest first")
	}

	totals := svc.DailyTotals(meals)
	// Two 100 g servings of a 6 kcal/g food.
	if math.Abs(totals.CaloriesKcal-1200) > 1e-9 {
		t.Errorf("daily calories = %g, want 1200", totals.CaloriesKcal)
	}
}

func TestDeleteMeal(t *testing.T) {
	svc, _ := newMemService()
	food := addTestFood(t, svc)
	ctx := context.Background()

	meal, err := svc.AddMeal(ctx, CreateMealEntry{
		DateTime: time.Now(),
		Items:    []CreateMealItem{{SavedFoodID: food.ID, ServingID: food.Servings[0].ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("AddMeal: %v", err)
	}

	deleted, err := svc.DeleteMeal(ctx, meal.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteMeal = (%v, %v), want (true, nil)", deleted, err)
	}
	deleted, err = svc.DeleteMeal(ctx, meal.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}
