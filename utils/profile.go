package utils

import (
	"errors"
	"time"
)

// YearsSinceDiagnosis expects a four-digit calendar year.
func YearsSinceDiagnosis(diagnosisYear int) (int, error) {
	current := time.Now().Year()
	if diagnosisYear < 1900 || diagnosisYear > current {
		return 0, errors.New("diagnosis year out of plausible range")
	}
	return current - diagnosisYear, nil
}
