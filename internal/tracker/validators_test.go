package tracker

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

var testDate = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	fields := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = f.Field
	}
	return fields
}

func TestValidateCardio(t *testing.T) {
	valid := CreateCardioSession{Date: testDate, Type: models.CardioRunning, DurationMinutes: 30}
	if err := validateCardio(valid); err != nil {
		t.Fatalf("valid session rejected: %v", err)
	}

	cases := []struct {
		name      string
		mutate    func(*CreateCardioSession)
		wantField string
	}{
		{"missing date", func(in *CreateCardioSession) { in.Date = time.Time{} }, "date"},
		{"unknown type", func(in *CreateCardioSession) { in.Type = "yoga" }, "type"},
		{"zero duration", func(in *CreateCardioSession) { in.DurationMinutes = 0 }, "duration_minutes"},
		{"duration too long", func(in *CreateCardioSession) { in.DurationMinutes = 1441 }, "duration_minutes"},
		{"distance too small", func(in *CreateCardioSession) { in.DistanceKm = 0.001 }, "distance_km"},
		{"distance too large", func(in *CreateCardioSession) { in.DistanceKm = 1001 }, "distance_km"},
		{"negative calories", func(in *CreateCardioSession) { in.CaloriesBurned = -1 }, "calories_burned"},
		{"long notes", func(in *CreateCardioSession) { in.Notes = strings.Repeat("x", 501) }, "notes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			fields := fieldsOf(t, validateCardio(in))
			if len(fields) != 1 || fields[0] != tc.wantField {
				t.Errorf("fields = %v, want [%s]", fields, tc.wantField)
			}
		})
	}
}

func TestValidateCardioOptionalFieldsSkipped(t *testing.T) {
	// Zero distance and calories mean "not recorded", not invalid.
	in := CreateCardioSession{Date: testDate, Type: models.CardioWalking, DurationMinutes: 45}
	if err := validateCardio(in); err != nil {
		t.Errorf("optional zero fields rejected: %v", err)
	}
}

func TestValidateWeight(t *testing.T) {
	if err := validateWeight(CreateWeightEntry{Date: testDate, WeightLbs: 180}); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
	for _, lbs := range []float64{49.9, 1000.1, 0} {
		if err := validateWeight(CreateWeightEntry{Date: testDate, WeightLbs: lbs}); err == nil {
			t.Errorf("weight %.1f accepted, want rejection", lbs)
		}
	}
}

func TestValidateBloodPressure(t *testing.T) {
	if err := validateBloodPressure(CreateBloodPressure{Date: testDate, Systolic: 120, Diastolic: 80}); err != nil {
		t.Fatalf("valid reading rejected: %v", err)
	}

	cases := []struct {
		name     string
		sys, dia int
	}{
		{"systolic too low", 59, 40},
		{"systolic too high", 251, 80},
		{"diastolic too low", 120, 39},
		{"diastolic too high", 200, 151},
		{"systolic not above diastolic", 90, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateBloodPressure(CreateBloodPressure{Date: testDate, Systolic: tc.sys, Diastolic: tc.dia})
			if err == nil {
				t.Errorf("%d/%d accepted, want rejection", tc.sys, tc.dia)
			}
		})
	}
}

func TestValidateGlucose(t *testing.T) {
	if err := validateGlucose(CreateBloodGlucose{Date: testDate, GlucoseMmol: 5.5}); err != nil {
		t.Fatalf("valid reading rejected: %v", err)
	}
	for _, v := range []float64{0.9, 35.1} {
		if err := validateGlucose(CreateBloodGlucose{Date: testDate, GlucoseMmol: v}); err == nil {
			t.Errorf("glucose %.1f accepted, want rejection", v)
		}
	}
}

func TestValidateKetone(t *testing.T) {
	// Zero is a real ketone reading, unlike glucose.
	if err := validateKetone(CreateKetone{Date: testDate, KetoneMmol: 0}); err != nil {
		t.Fatalf("zero ketone rejected: %v", err)
	}
	for _, v := range []float64{-0.1, 10.1} {
		if err := validateKetone(CreateKetone{Date: testDate, KetoneMmol: v}); err == nil {
			t.Errorf("ketone %.1f accepted, want rejection", v)
		}
	}
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	err := validateCardio(CreateCardioSession{})
	fields := fieldsOf(t, err)
	if len(fields) < 3 {
		t.Errorf("fields = %v, want every invalid field reported", fields)
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error text = %q", err.Error())
	}
}
