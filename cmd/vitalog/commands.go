package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/fatih/color"

	"github.com/mfeller/vitalog/internal/chat"
	"github.com/mfeller/vitalog/internal/diet"
	"github.com/mfeller/vitalog/internal/models"
	"github.com/mfeller/vitalog/internal/tracker"
)

func (a *app) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/help":
		printHelp()
	case "/new":
		a.cmdNew(ctx, strings.Join(args, " "))
	case "/list":
		a.cmdList(ctx)
	case "/open":
		a.cmdOpen(ctx, args)
	case "/delete":
		a.cmdDelete(ctx, args)
	case "/search":
		a.cmdSearch(ctx, strings.Join(args, " "))
	case "/weight":
		a.cmdWeight(ctx, args)
	case "/cardio":
		a.cmdCardio(ctx, args)
	case "/bp":
		a.cmdBloodPressure(ctx, args)
	case "/glucose":
		a.cmdGlucose(ctx, args)
	case "/ketone":
		a.cmdKetone(ctx, args)
	case "/readings":
		a.cmdReadings(ctx)
	case "/food":
		a.cmdFood(ctx, args)
	case "/foods":
		a.cmdFoods(ctx)
	case "/meal":
		a.cmdMeal(ctx, args)
	case "/today":
		a.cmdToday(ctx)
	case "/settings":
		a.cmdSettings(ctx, args)
	case "/info":
		a.cmdInfo(ctx)
	default:
		printError(fmt.Errorf("unknown command %s (try /help)", cmd))
	}
}

func (a *app) send(ctx context.Context, text string) {
	if a.currentConv == "" {
		conv, err := a.chat.CreateConversation(ctx, "")
		if err != nil {
			printError(err)
			return
		}
		a.currentConv = conv.ID
		color.HiBlack("started %q", conv.Title)
	}

	reply, err := a.chat.SendMessage(ctx, a.currentConv, text)
	if err != nil {
		printSendError(err)
		return
	}
	printAssistant(reply.Content)
}

func (a *app) cmdNew(ctx context.Context, title string) {
	conv, err := a.chat.CreateConversation(ctx, title)
	if err != nil {
		printError(err)
		return
	}
	a.currentConv = conv.ID
	fmt.Printf("created %q (%s)\n", conv.Title, shortID(conv.ID))
}

func (a *app) cmdList(ctx context.Context) {
	convs, err := a.chat.ListConversations(ctx)
	if err != nil {
		printError(err)
		return
	}
	if len(convs) == 0 {
		fmt.Println("no conversations yet")
		return
	}
	for _, c := range convs {
		marker := " "
		if c.ID == a.currentConv {
			marker = "*"
		}
		fmt.Printf("%s %s  %-30s %3d messages  %s\n",
			marker, shortID(c.ID), c.Title, len(c.Messages), c.UpdatedAt.Local().Format("Jan 2 15:04"))
	}
}

func (a *app) cmdOpen(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: /open <id>")
		return
	}
	conv, err := a.resolveConversation(ctx, args[0])
	if err != nil {
		printError(err)
		return
	}
	a.currentConv = conv.ID
	fmt.Printf("opened %q\n", conv.Title)
	for _, m := range conv.Messages {
		printTurn(m)
	}
}

func (a *app) cmdDelete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: /delete <id>")
		return
	}
	conv, err := a.resolveConversation(ctx, args[0])
	if err != nil {
		printError(err)
		return
	}
	deleted, err := a.chat.DeleteConversation(ctx, conv.ID)
	if err != nil {
		printError(err)
		return
	}
	if deleted {
		if a.currentConv == conv.ID {
			a.currentConv = ""
		}
		fmt.Printf("deleted %q\n", conv.Title)
	} else {
		fmt.Println("conversation not found")
	}
}

func (a *app) cmdSearch(ctx context.Context, query string) {
	if query == "" {
		fmt.Println("usage: /search <query>")
		return
	}
	hits, err := a.chat.SearchMessages(ctx, query, 10)
	if err != nil {
		printError(err)
		return
	}
	if len(hits) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, h := range hits {
		fmt.Printf("%s  [%s] %s\n", shortID(h.ConversationID), h.Role, truncate(h.Content, 80))
	}
}

// resolveConversation accepts a full id or a unique prefix.
func (a *app) resolveConversation(ctx context.Context, ref string) (*models.Conversation, error) {
	convs, err := a.chat.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	var match *models.Conversation
	for i := range convs {
		if convs[i].ID == ref {
			return &convs[i], nil
		}
		if strings.HasPrefix(convs[i].ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id prefix %q", ref)
			}
			match = &convs[i]
		}
	}
	if match == nil {
		return nil, chat.ErrNotFound
	}
	return match, nil
}

func (a *app) cmdWeight(ctx context.Context, args []string) {
	if len(args) == 0 {
		entries, err := a.tracker.ListWeight(ctx)
		if err != nil {
			printError(err)
			return
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %.1f lbs  %s\n", shortID(e.ID), e.Date.Local().Format("Jan 2"), e.WeightLbs, e.Notes)
		}
		return
	}

	lbs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Println("usage: /weight [<lbs> [notes]]")
		return
	}
	entry, err := a.tracker.AddWeight(ctx, tracker.CreateWeightEntry{
		Date:      time.Now(),
		WeightLbs: lbs,
		Notes:     strings.Join(args[1:], " "),
	})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("logged %.1f lbs (%s)\n", entry.WeightLbs, shortID(entry.ID))
}

func (a *app) cmdCardio(ctx context.Context, args []string) {
	if len(args) == 0 {
		sessions, err := a.tracker.ListCardio(ctx)
		if err != nil {
			printError(err)
			return
		}
		for _, s := range sessions {
			fmt.Printf("%s  %s  %-10s %3d min", shortID(s.ID), s.Date.Local().Format("Jan 2"), s.Type, s.DurationMinutes)
			if s.DistanceKm > 0 {
				fmt.Printf("  %.2f km", s.DistanceKm)
			}
			if s.CaloriesBurned > 0 {
				fmt.Printf("  %.0f kcal", s.CaloriesBurned)
			}
			fmt.Println()
		}
		return
	}

	if len(args) < 2 {
		fmt.Println("usage: /cardio [<type> <minutes> [km] [kcal] [notes]]")
		return
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("minutes must be a whole number")
		return
	}

	in := tracker.CreateCardioSession{
		Date:            time.Now(),
		Type:            models.CardioType(args[0]),
		DurationMinutes: minutes,
	}
	rest := args[2:]
	if len(rest) > 0 {
		if v, err := strconv.ParseFloat(rest[0], 64); err == nil {
			in.DistanceKm = v
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if v, err := strconv.ParseFloat(rest[0], 64); err == nil {
			in.CaloriesBurned = v
			rest = rest[1:]
		}
	}
	in.Notes = strings.Join(rest, " ")

	session, err := a.tracker.AddCardio(ctx, in)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("logged %s, %d min (%s)\n", session.Type, session.DurationMinutes, shortID(session.ID))
}

func (a *app) cmdBloodPressure(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: /bp <systolic>/<diastolic> [notes]")
		return
	}
	parts := strings.SplitN(args[0], "/", 2)
	if len(parts) != 2 {
		fmt.Println("usage: /bp <systolic>/<diastolic> [notes]")
		return
	}
	sys, err1 := strconv.Atoi(parts[0])
	dia, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		fmt.Println("blood pressure must be numbers, e.g. 120/80")
		return
	}

	reading, err := a.tracker.AddBloodPressure(ctx, tracker.CreateBloodPressure{
		Date:      time.Now(),
		Systolic:  sys,
		Diastolic: dia,
		Notes:     strings.Join(args[1:], " "),
	})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("logged %d/%d (%s)\n", reading.Systolic, reading.Diastolic, shortID(reading.ID))
}

func (a *app) cmdGlucose(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: /glucose <mmol/L> [notes]")
		return
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Println("glucose must be a number in mmol/L")
		return
	}
	reading, err := a.tracker.AddGlucose(ctx, tracker.CreateBloodGlucose{
		Date:        time.Now(),
		GlucoseMmol: v,
		Notes:       strings.Join(args[1:], " "),
	})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("logged %.1f mmol/L (%s)\n", reading.GlucoseMmol, shortID(reading.ID))
}

func (a *app) cmdKetone(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: /ketone <mmol/L> [notes]")
		return
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Println("ketone must be a number in mmol/L")
		return
	}
	reading, err := a.tracker.AddKetone(ctx, tracker.CreateKetone{
		Date:       time.Now(),
		KetoneMmol: v,
		Notes:      strings.Join(args[1:], " "),
	})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("logged %.1f mmol/L (%s)\n", reading.KetoneMmol, shortID(reading.ID))
}

func (a *app) cmdReadings(ctx context.Context) {
	readings, err := a.tracker.ListReadings(ctx)
	if err != nil {
		printError(err)
		return
	}
	for _, r := range readings {
		fmt.Printf("%s  %s  %s\n", shortID(r.ID), r.Date.Local().Format("Jan 2 15:04"), formatReading(r))
	}
}

// cmdFood adds a saved food: /food <name> <g|tbsp> kcal=.. protein=.. fat=..
// carbs=.. fiber=.. sugar=.. sodium=.. gpt=<grams per tbsp>
func (a *app) cmdFood(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: /food <name> <g|tbsp> kcal=<v> protein=<v> fat=<v> carbs=<v> [fiber=<v>] [sugar=<v>] [sodium=<v>] [gpt=<v>]")
		return
	}

	in := diet.CreateSavedFood{
		Name:     args[0],
		BaseUnit: models.FoodUnit(args[1]),
	}
	for _, kv := range args[2:] {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Printf("expected key=value, got %q\n", kv)
			return
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			fmt.Printf("%s must be a number\n", key)
			return
		}
		switch key {
		case "kcal":
			in.NutrientsPerUnit.CaloriesKcal = v
		case "protein":
			in.NutrientsPerUnit.ProteinG = v
		case "fat":
			in.NutrientsPerUnit.FatG = v
		case "carbs":
			in.NutrientsPerUnit.CarbsG = v
		case "fiber":
			in.NutrientsPerUnit.FiberG = v
		case "sugar":
			in.NutrientsPerUnit.SugarG = v
		case "sodium":
			in.NutrientsPerUnit.SodiumMg = v
		case "gpt":
			in.GramsPerTbsp = v
		default:
			fmt.Printf("unknown field %q\n", key)
			return
		}
	}

	food, err := a.diet.AddSavedFood(ctx, in)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("saved %q (%s)\n", food.Name, shortID(food.ID))
}

func (a *app) cmdFoods(ctx context.Context) {
	foods, err := a.diet.ListSavedFoods(ctx)
	if err != nil {
		printError(err)
		return
	}
	if len(foods) == 0 {
		fmt.Println("no saved foods yet (add one with /food)")
		return
	}
	for _, f := range foods {
		fmt.Printf("%s  %-20s per %s: %.0f kcal, %.1fg protein, %.1fg net carbs\n",
			shortID(f.ID), f.Name, f.BaseUnit,
			f.NutrientsPerUnit.CaloriesKcal, f.NutrientsPerUnit.ProteinG, f.NutrientsPerUnit.NetCarbsG)
		for _, sv := range f.Servings {
			fmt.Printf("    %s  %s (%.2g %s)\n", shortID(sv.ID), sv.Label, sv.Amount, sv.Unit)
		}
	}
}

// cmdMeal logs a meal: /meal <type> <food> <serving> <qty> [<food> <serving> <qty> ...]
// Foods and servings are matched by id prefix or name/label.
func (a *app) cmdMeal(ctx context.Context, args []string) {
	if len(args) < 4 || (len(args)-1)%3 != 0 {
		fmt.Println("usage: /meal <breakfast|lunch|dinner|snack> <food> <serving> <qty> ...")
		return
	}

	foods, err := a.diet.ListSavedFoods(ctx)
	if err != nil {
		printError(err)
		return
	}

	in := diet.CreateMealEntry{
		DateTime: time.Now(),
		MealType: models.MealType(args[0]),
	}
	for i := 1; i < len(args); i += 3 {
		food, serving, err := resolveFoodServing(foods, args[i], args[i+1])
		if err != nil {
			printError(err)
			return
		}
		qty, err := strconv.ParseFloat(args[i+2], 64)
		if err != nil {
			fmt.Println("quantity must be a number")
			return
		}
		in.Items = append(in.Items, diet.CreateMealItem{
			SavedFoodID: food.ID,
			ServingID:   serving.ID,
			Quantity:    qty,
		})
	}

	meal, err := a.diet.AddMeal(ctx, in)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("logged %s (%s)\n", meal.MealType, shortID(meal.ID))
	printTotals("  ", meal.Totals)
}

func (a *app) cmdToday(ctx context.Context) {
	meals, err := a.diet.MealsForDay(ctx, time.Now())
	if err != nil {
		printError(err)
		return
	}
	if len(meals) == 0 {
		fmt.Println("no meals logged today")
		return
	}
	for _, m := range meals {
		fmt.Printf("%s  %s  %s\n", shortID(m.ID), m.DateTime.Local().Format("15:04"), m.MealType)
		for _, it := range m.Items {
			fmt.Printf("    %s × %.2g %s\n", it.SavedFoodName, it.Quantity, it.ServingLabel)
		}
	}
	fmt.Println("today's totals:")
	printTotals("  ", a.diet.DailyTotals(meals))
}

func (a *app) cmdSettings(ctx context.Context, args []string) {
	if len(args) == 0 {
		cfg, err := a.settings.Settings(ctx)
		if err != nil {
			printError(err)
			return
		}
		key := "(not set)"
		if cfg.APIKey != "" {
			key = cfg.APIKey[:min(10, len(cfg.APIKey))] + "..."
		}
		model := cfg.Model
		if model == "" {
			model = models.ClaudeModels[0].Value + " (default)"
		}
		fmt.Printf("api key:    %s\nmodel:      %s\nmax tokens: %d\n", key, model, cfg.MaxResponseTokens)
		return
	}

	cfg, err := a.settings.Settings(ctx)
	if err != nil {
		printError(err)
		return
	}

	switch args[0] {
	case "key":
		if len(args) != 2 {
			fmt.Println("usage: /settings key <sk-ant-...>")
			return
		}
		cfg.APIKey = args[1]
	case "clearkey":
		if err := a.settings.ClearAPIKey(ctx); err != nil {
			printError(err)
			return
		}
		fmt.Println("API key cleared")
		return
	case "model":
		if len(args) != 2 {
			fmt.Println("available models:")
			for _, m := range models.ClaudeModels {
				fmt.Printf("  %s  (%s)\n", m.Value, m.Label)
			}
			return
		}
		cfg.Model = args[1]
	case "tokens":
		if len(args) != 2 {
			fmt.Println("usage: /settings tokens <n>")
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("tokens must be a whole number")
			return
		}
		cfg.MaxResponseTokens = n
	default:
		fmt.Println("usage: /settings [key|clearkey|model|tokens]")
		return
	}

	if err := a.settings.Save(ctx, cfg); err != nil {
		printError(err)
		return
	}
	fmt.Println("settings saved")
}

func (a *app) cmdInfo(ctx context.Context) {
	info, err := a.store.Info()
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("data file: %s\nsize:      %s\n", a.store.Path(), units.HumanSize(float64(info.UsedBytes)))
}

func resolveFoodServing(foods []models.SavedFood, foodRef, servingRef string) (*models.SavedFood, *models.SavedFoodServing, error) {
	for i := range foods {
		f := &foods[i]
		if !strings.HasPrefix(f.ID, foodRef) && !strings.EqualFold(f.Name, foodRef) {
			continue
		}
		for j := range f.Servings {
			sv := &f.Servings[j]
			if strings.HasPrefix(sv.ID, servingRef) || strings.EqualFold(sv.Label, servingRef) {
				return f, sv, nil
			}
		}
		return nil, nil, fmt.Errorf("food %q has no serving %q", f.Name, servingRef)
	}
	return nil, nil, errors.New("saved food not found (see /foods)")
}
