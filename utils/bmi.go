package utils

import (
	"errors"
	"math"
)

// CalculateBMI expects height in centimeters and weight in kilograms and
// returns the body-mass index rounded to 2 decimal places.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}

	h := heightCm / 100.0 // to meters
	bmi := weightKg / (h * h)
	return math.Round(bmi*100) / 100, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}
