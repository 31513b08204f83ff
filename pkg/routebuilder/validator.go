package routebuilder

import (
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
)

const emptyRouteMessage = "A route needs at least one stop"

// ValidationResult is the outcome of checking a stop sequence.
// Errors block committing the sequence, Warnings are advisory only.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

type stopIdentity struct {
	name string
	line string
	mode ctdf.TransportMode
}

// Validate checks a stop sequence for exact duplicates and for discontinuities between
// neighbouring stops.
// There is no transit network behind this, only stop names and line labels are compared.
// A change of subway line between two different stations is blocked because the draft is
// missing the station where the rider changes, but nothing checks the stations are
// actually connected.
func Validate(stops []SelectedStop) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if len(stops) == 0 {
		result.Errors = append(result.Errors, emptyRouteMessage)
		return result
	}

	seen := map[stopIdentity]bool{}
	for _, stop := range stops {
		identity := stopIdentity{name: stop.Name, line: stop.Line(), mode: stop.TransportMode()}

		if seen[identity] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s is already part of the route", describeStop(stop)))
		}
		seen[identity] = true
	}

	for i := 1; i < len(stops); i++ {
		checkAdjacent(stops[i-1], stops[i], &result)
	}

	result.IsValid = len(result.Errors) == 0

	return result
}

func checkAdjacent(previous SelectedStop, current SelectedStop, result *ValidationResult) {
	previousMode := previous.TransportMode()
	currentMode := current.TransportMode()

	if previousMode != currentMode {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Changing from %s at %s to %s at %s, check the walk between them",
			previousMode.Label(), previous.Name, currentMode.Label(), current.Name,
		))
		return
	}

	switch currentMode {
	case ctdf.TransportModeSubway:
		sameName := previous.Name == current.Name
		sameLine := previous.Line() == current.Line()

		if sameName && sameLine {
			result.Errors = append(result.Errors, fmt.Sprintf("%s is listed twice in a row", describeStop(current)))
		} else if sameLine && current.Line() == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s and %s have no line set, check they are on the same line",
				previous.Name, current.Name,
			))
		} else if sameLine {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s and %s are both on %s, the stops in between can be left out",
				previous.Name, current.Name, current.Line(),
			))
		} else if !sameName {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Cannot get from %s to %s without a transfer station, add the station where you change lines",
				describeStop(previous), describeStop(current),
			))
		}
	case ctdf.TransportModeBus:
		if previous.Name != current.Name {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Bus transfer from %s to %s could not be verified",
				previous.Name, current.Name,
			))
		}
	}
}

func describeStop(stop SelectedStop) string {
	if line := stop.Line(); line != "" {
		return fmt.Sprintf("%s (%s)", stop.Name, line)
	}

	return fmt.Sprintf("%s (%s)", stop.Name, stop.TransportMode().Label())
}
