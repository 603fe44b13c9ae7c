// Package fitness builds the system prompt for the chat assistant: a
// persona preamble plus a point-in-time snapshot of the user's tracked
// data.
package fitness

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

// Store is the document store the snapshot is read from.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
}

// ContextProvider assembles the system prompt for chat requests.
type ContextProvider struct {
	store Store
}

// NewContextProvider creates a fitness context provider.
func NewContextProvider(store Store) *ContextProvider {
	return &ContextProvider{store: store}
}

// BuildSystemPrompt returns the persona preamble with the current data
// snapshot embedded.
func (p *ContextProvider) BuildSystemPrompt(ctx context.Context) (string, error) {
	doc, err := p.store.Load(ctx)
	if err != nil {
		return "", err
	}

	sections := []string{
		weightSection(doc.WeightEntries),
		cardioSection(doc.CardioSessions),
		readingsSection(doc.HealthReadings),
		nutritionSection(doc.MealEntries),
	}

	return fmt.Sprintf(`You are a knowledgeable health and fitness expert and personal assistant.
You are working with the user as their dedicated fitness advisor. You have
access to their tracked fitness data below. Reference their actual data
when relevant. Be supportive, evidence-based, and concise.

Remember key details from our conversations — the user's goals, preferences,
injuries, and any context they share with you.

## Current Fitness Data (as of %s)

%s`, time.Now().UTC().Format(time.RFC3339), strings.Join(sections, "\n\n")), nil
}

func weightSection(entries []models.WeightEntry) string {
	if len(entries) == 0 {
		return "### Weight Trend\nNo weight entries recorded."
	}

	sorted := make([]models.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	latest := sorted[0]
	now := time.Now()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	avg7 := "N/A"
	var sum7 float64
	var n7 int
	for _, e := range sorted {
		if e.Date.After(sevenDaysAgo) {
			sum7 += e.WeightLbs
			n7++
		}
	}
	if n7 > 0 {
		avg7 = fmt.Sprintf("%.1f", sum7/float64(n7))
	}

	change := "N/A"
	var within30 []models.WeightEntry
	for _, e := range sorted {
		if e.Date.After(thirtyDaysAgo) {
			within30 = append(within30, e)
		}
	}
	if len(within30) >= 2 {
		oldest := within30[len(within30)-1]
		change = fmt.Sprintf("%+.1f lbs", latest.WeightLbs-oldest.WeightLbs)
	}

	return fmt.Sprintf(`### Weight Trend
- Latest: %.1f lbs on %s
- 7-day avg: %s lbs | 30-day change: %s`,
		latest.WeightLbs, latest.Date.Format("Jan 2, 2006"), avg7, change)
}

func cardioSection(sessions []models.CardioSession) string {
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	var recent []models.CardioSession
	for _, s := range sessions {
		if s.Date.After(sevenDaysAgo) {
			recent = append(recent, s)
		}
	}
	if len(recent) == 0 {
		return "### Recent Cardio (last 7 days)\nNo cardio sessions in the last 7 days."
	}

	totalMin := 0
	counts := map[models.CardioType]int{}
	var order []models.CardioType
	for _, s := range recent {
		totalMin += s.DurationMinutes
		if counts[s.Type] == 0 {
			order = append(order, s.Type)
		}
		counts[s.Type]++
	}

	parts := make([]string, 0, len(order))
	for _, t := range order {
		parts = append(parts, fmt.Sprintf("%s (%d)", t, counts[t]))
	}

	return fmt.Sprintf(`### Recent Cardio (last 7 days)
- %d sessions, %d min total
- Types: %s`, len(recent), totalMin, strings.Join(parts, ", "))
}

func readingsSection(readings []models.HealthReading) string {
	if len(readings) == 0 {
		return "### Latest Health Readings\nNo health readings recorded."
	}

	sorted := make([]models.HealthReading, len(readings))
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	latest := func(t models.ReadingType) *models.HealthReading {
		for i := range sorted {
			if sorted[i].Type == t {
				return &sorted[i]
			}
		}
		return nil
	}

	lines := []string{"### Latest Health Readings"}
	if r := latest(models.ReadingBloodPressure); r != nil {
		lines = append(lines, fmt.Sprintf("- BP: %d/%d mmHg (%s)", r.Systolic, r.Diastolic, r.Date.Format("Jan 2, 2006")))
	}
	if r := latest(models.ReadingBloodGlucose); r != nil {
		lines = append(lines, fmt.Sprintf("- Glucose: %.1f mmol/L (%s)", r.GlucoseMmol, r.Date.Format("Jan 2, 2006")))
	}
	if r := latest(models.ReadingKetone); r != nil {
		lines = append(lines, fmt.Sprintf("- Ketones: %.1f mmol/L (%s)", r.KetoneMmol, r.Date.Format("Jan 2, 2006")))
	}
	if len(lines) == 1 {
		lines = append(lines, "No recent health readings.")
	}
	return strings.Join(lines, "\n")
}

func nutritionSection(meals []models.MealEntry) string {
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	var recent []models.MealEntry
	for _, m := range meals {
		if m.DateTime.After(sevenDaysAgo) {
			recent = append(recent, m)
		}
	}
	if len(recent) == 0 {
		return "### Nutrition (7-day daily average)\nNo meal entries in the last 7 days."
	}

	var totals models.NutritionTotals
	days := map[string]bool{}
	for _, m := range recent {
		totals.CaloriesKcal += m.Totals.CaloriesKcal
		totals.ProteinG += m.Totals.ProteinG
		totals.FatG += m.Totals.FatG
		totals.CarbsG += m.Totals.CarbsG
		totals.FiberG += m.Totals.FiberG
		totals.NetCarbsG += m.Totals.NetCarbsG
		days[m.DateTime.Format("2006-01-02")] = true
	}

	n := float64(len(days))
	avg := func(v float64) int { return int(v/n + 0.5) }

	return fmt.Sprintf(`### Nutrition (7-day daily average)
- %d kcal | P: %dg | F: %dg | C: %dg | Fiber: %dg | Net carbs: %dg`,
		avg(totals.CaloriesKcal), avg(totals.ProteinG), avg(totals.FatG),
		avg(totals.CarbsG), avg(totals.FiberG), avg(totals.NetCarbsG))
}
