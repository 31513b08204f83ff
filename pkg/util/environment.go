package util

import (
	"os"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentDuration reads an ISO-8601 duration (eg. PT2H) from the environment,
// falling back when the variable is unset or unparsable
func GetEnvironmentDuration(name string, fallback time.Duration) time.Duration {
	value := GetEnvironmentVariables()[name]
	if value == "" {
		return fallback
	}

	duration, err := ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}

	return duration
}

func ParseDuration(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	// Shift from a fixed reference so calendar units resolve the same way every time
	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	return parsed.Shift(reference).Sub(reference), nil
}
