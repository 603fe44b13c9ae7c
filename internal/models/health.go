package models

import "time"

// CardioType is the kind of cardio exercise performed.
type CardioType string

const (
	CardioRunning    CardioType = "running"
	CardioCycling    CardioType = "cycling"
	CardioSwimming   CardioType = "swimming"
	CardioWalking    CardioType = "walking"
	CardioRowing     CardioType = "rowing"
	CardioElliptical CardioType = "elliptical"
	CardioOther      CardioType = "other"
)

// CardioTypes lists the accepted cardio types for validation and prompts.
var CardioTypes = []CardioType{
	CardioRunning, CardioCycling, CardioSwimming, CardioWalking,
	CardioRowing, CardioElliptical, CardioOther,
}

// CardioSession is a single cardio workout.
type CardioSession struct {
	ID              string     `json:"id"`
	Date            time.Time  `json:"date"`
	Type            CardioType `json:"type"`
	DurationMinutes int        `json:"duration_minutes"`
	DistanceKm      float64    `json:"distance_km,omitempty"`
	CaloriesBurned  float64    `json:"calories_burned,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// WeightEntry is a single weight measurement in pounds.
type WeightEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	WeightLbs float64   `json:"weight_lbs"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingType discriminates the health reading variants.
type ReadingType string

const (
	ReadingBloodPressure ReadingType = "blood_pressure"
	ReadingBloodGlucose  ReadingType = "blood_glucose"
	ReadingKetone        ReadingType = "ketone"
)

// HealthReading is a tagged record: Type selects which value fields are
// meaningful (Systolic/Diastolic for blood pressure, GlucoseMmol for
// glucose, KetoneMmol for ketones).
type HealthReading struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Type        ReadingType `json:"type"`
	Systolic    int         `json:"systolic,omitempty"`
	Diastolic   int         `json:"diastolic,omitempty"`
	GlucoseMmol float64     `json:"glucose_mmol,omitempty"`
	KetoneMmol  float64     `json:"ketone_mmol,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
