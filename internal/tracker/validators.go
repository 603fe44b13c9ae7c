// Package tracker provides CRUD services for cardio sessions, weight
// entries, and health readings, with static-bound validation.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

// Validation bounds. Values outside these ranges are almost certainly
// data-entry mistakes, not real measurements.
const (
	DurationMinMinutes = 1
	DurationMaxMinutes = 1440
	DistanceMinKm      = 0.01
	DistanceMaxKm      = 1000
	CaloriesMax        = 20000
	WeightMinLbs       = 50
	WeightMaxLbs       = 1000
	SystolicMin        = 60
	SystolicMax        = 250
	DiastolicMin       = 40
	DiastolicMax       = 150
	GlucoseMinMmol     = 1.0
	GlucoseMaxMmol     = 35.0
	KetoneMaxMmol      = 10.0
	NotesMaxLength     = 500
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field errors for one record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors []FieldError

func (fe *fieldErrors) add(field, format string, args ...any) {
	*fe = append(*fe, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

func validateCommon(fe *fieldErrors, date time.Time, notes string) {
	if date.IsZero() {
		fe.add("date", "date is required")
	}
	if len(notes) > NotesMaxLength {
		fe.add("notes", "notes must be %d characters or less", NotesMaxLength)
	}
}

func validateCardio(in CreateCardioSession) error {
	var fe fieldErrors
	validateCommon(&fe, in.Date, in.Notes)

	valid := false
	for _, t := range models.CardioTypes {
		if t == in.Type {
			valid = true
			break
		}
	}
	if !valid {
		fe.add("type", "invalid cardio type %q", in.Type)
	}

	if in.DurationMinutes < DurationMinMinutes || in.DurationMinutes > DurationMaxMinutes {
		fe.add("duration_minutes", "duration must be between %d and %d minutes", DurationMinMinutes, DurationMaxMinutes)
	}
	if in.DistanceKm != 0 && (in.DistanceKm < DistanceMinKm || in.DistanceKm > DistanceMaxKm) {
		fe.add("distance_km", "distance must be between %g and %g km", DistanceMinKm, float64(DistanceMaxKm))
	}
	if in.CaloriesBurned < 0 || in.CaloriesBurned > CaloriesMax {
		fe.add("calories_burned", "calories must be between 0 and %d kcal", CaloriesMax)
	}
	return fe.err()
}

func validateWeight(in CreateWeightEntry) error {
	var fe fieldErrors
	validateCommon(&fe, in.Date, in.Notes)

	if in.WeightLbs < WeightMinLbs || in.WeightLbs > WeightMaxLbs {
		fe.add("weight_lbs", "weight must be between %d and %d lbs", WeightMinLbs, WeightMaxLbs)
	}
	return fe.err()
}

func validateBloodPressure(in CreateBloodPressure) error {
	var fe fieldErrors
	validateCommon(&fe, in.Date, in.Notes)

	if in.Systolic < SystolicMin || in.Systolic > SystolicMax {
		fe.add("systolic", "systolic must be between %d and %d mmHg", SystolicMin, SystolicMax)
	}
	if in.Diastolic < DiastolicMin || in.Diastolic > DiastolicMax {
		fe.add("diastolic", "diastolic must be between %d and %d mmHg", DiastolicMin, DiastolicMax)
	}
	if in.Systolic <= in.Diastolic {
		fe.add("systolic", "systolic must be greater than diastolic")
	}
	return fe.err()
}

func validateGlucose(in CreateBloodGlucose) error {
	var fe fieldErrors
	validateCommon(&fe, in.Date, in.Notes)

	if in.GlucoseMmol < GlucoseMinMmol || in.GlucoseMmol > GlucoseMaxMmol {
		fe.add("glucose_mmol", "glucose must be between %g and %g mmol/L", GlucoseMinMmol, GlucoseMaxMmol)
	}
	return fe.err()
}

func validateKetone(in CreateKetone) error {
	var fe fieldErrors
	validateCommon(&fe, in.Date, in.Notes)

	if in.KetoneMmol < 0 || in.KetoneMmol > KetoneMaxMmol {
		fe.add("ketone_mmol", "ketone must be between 0 and %g mmol/L", float64(KetoneMaxMmol))
	}
	return fe.err()
}
