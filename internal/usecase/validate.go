package usecase

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

func parseDoctorID(doctorID string) (uuid.UUID, error) {
	id, err := uuid.Parse(doctorID)
	if err != nil {
		return uuid.Nil, &ValidationError{Messages: []string{"Doctor ID must be a valid UUID"}}
	}
	return id, nil
}

var patientNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// validatePatientData collects every violated rule instead of stopping at
// the first one.
func validatePatientData(name string, age int, gender, reason string, location *string) []string {
	var errs []string

	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) < 2 || len(trimmedName) > 50 {
		errs = append(errs, "Patient name must be between 2-50 characters")
	}
	if !patientNamePattern.MatchString(name) {
		errs = append(errs, "Patient name can only contain letters and spaces")
	}

	if age < 1 || age > 120 {
		errs = append(errs, "Age must be between 1-120")
	}

	if gender != "male" && gender != "female" && gender != "other" {
		errs = append(errs, "Gender must be male, female, or other")
	}

	trimmedReason := strings.TrimSpace(reason)
	if len(trimmedReason) < 5 || len(trimmedReason) > 200 {
		errs = append(errs, "Reason must be between 5-200 characters")
	}

	if location != nil && len(*location) > 100 {
		errs = append(errs, "Location must be less than 100 characters")
	}

	return errs
}
