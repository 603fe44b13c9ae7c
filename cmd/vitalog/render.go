package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/mfeller/vitalog/internal/chat"
	"github.com/mfeller/vitalog/internal/models"
)

var (
	assistantColor = color.New(color.FgCyan)
	errorColor     = color.New(color.FgRed)
	userColor      = color.New(color.FgGreen)
)

func printWelcome() {
	fmt.Println("vitalog — health tracking with an AI coach")
	fmt.Println("type a message to chat, or /help for commands")
}

func printHelp() {
	fmt.Print(`chat
  /new [title]        start a conversation
  /list               list conversations
  /open <id>          open a conversation and show its history
  /delete <id>        delete a conversation
  /search <query>     search across all messages

tracking
  /weight [<lbs> [notes]]                   log or list weight
  /cardio [<type> <minutes> [km] [kcal]]    log or list cardio
  /bp <sys>/<dia> [notes]                   log blood pressure
  /glucose <mmol/L> [notes]                 log blood glucose
  /ketone <mmol/L> [notes]                  log ketones
  /readings                                 list health readings

diet
  /food <name> <g|tbsp> kcal=.. protein=..  save a food
  /foods                                    list saved foods
  /meal <type> <food> <serving> <qty> ...   log a meal
  /today                                    today's meals and totals

other
  /settings [key|clearkey|model|tokens]     view or change AI settings
  /info                                     storage info
  /quit                                     exit
`)
}

func printAssistant(text string) {
	assistantColor.Println(text)
}

func printTurn(m models.ChatMessage) {
	if m.Role == models.RoleUser {
		userColor.Printf("you> ")
		fmt.Println(m.Content)
	} else {
		printAssistant(m.Content)
	}
}

func printError(err error) {
	errorColor.Printf("error: %v\n", err)
}

// printSendError renders chat failures with remediation text where the
// error carries one.
func printSendError(err error) {
	if errors.Is(err, chat.ErrNoAPIKey) {
		errorColor.Println("No API key configured. Set one with /settings key <sk-ant-...>")
		return
	}
	if errors.Is(err, chat.ErrNotFound) {
		errorColor.Println("That conversation no longer exists.")
		return
	}
	var modelErr *chat.ModelError
	if errors.As(err, &modelErr) {
		errorColor.Println(modelErr.UserMessage())
		return
	}
	printError(err)
}

func formatReading(r models.HealthReading) string {
	switch r.Type {
	case models.ReadingBloodPressure:
		return fmt.Sprintf("BP %d/%d", r.Systolic, r.Diastolic)
	case models.ReadingBloodGlucose:
		return fmt.Sprintf("glucose %.1f mmol/L", r.GlucoseMmol)
	case models.ReadingKetone:
		return fmt.Sprintf("ketone %.1f mmol/L", r.KetoneMmol)
	}
	return string(r.Type)
}

func printTotals(indent string, t models.NutritionTotals) {
	fmt.Printf("%s%.0f kcal  protein %.1fg  fat %.1fg  carbs %.1fg  fiber %.1fg  net carbs %.1fg\n",
		indent, t.CaloriesKcal, t.ProteinG, t.FatG, t.CarbsG, t.FiberG, t.NetCarbsG)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
