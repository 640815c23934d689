package utils

import (
	"fmt"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// EstimatedWaitTime assumes 15 minutes per queued patient ahead.
func EstimatedWaitTime(position int) string {
	if position < 1 {
		position = 1
	}
	return fmt.Sprintf("%d minutes", (position-1)*15)
}
