package routebuilder

import (
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
)

// LineOption is one line a candidate station can be picked on.
// Bus candidates carry a single option with an empty Label.
type LineOption struct {
	Label      string
	ExternalID string
	StopNumber string `json:",omitempty"`
}

// StopCandidate groups the search matches that refer to one physical station or stop
type StopCandidate struct {
	Name          string
	TransportMode ctdf.TransportMode
	Lines         []LineOption
}

// StopChoice is a candidate narrowed down to a single line, ready to be appended to a draft
type StopChoice struct {
	Name          string
	ExternalID    string
	TransportMode ctdf.TransportMode
	Line          string
	StopNumber    string
}

func (c *StopCandidate) Choose(option LineOption) StopChoice {
	return StopChoice{
		Name:          c.Name,
		ExternalID:    option.ExternalID,
		TransportMode: c.TransportMode,
		Line:          option.Label,
		StopNumber:    option.StopNumber,
	}
}

// Option looks up one of the candidates lines by its label
func (c *StopCandidate) Option(label string) (LineOption, bool) {
	for _, option := range c.Lines {
		if option.Label == label {
			return option, true
		}
	}

	return LineOption{}, false
}

func (c *StopCandidate) hasLine(label string) bool {
	_, exists := c.Option(label)
	return exists
}

// ResolveCandidates groups raw search matches into candidates, keeping the order the
// search returned them in.
// Subway matches are grouped by station name with lines deduplicated by label, the first
// identifier seen for a label wins. Bus stops are not grouped by line so every distinct
// stop becomes its own candidate.
func ResolveCandidates(matches []*ctdf.Stop) []StopCandidate {
	candidates := []StopCandidate{}
	candidateIndex := map[string]int{}

	for _, match := range matches {
		if match == nil {
			continue
		}

		var groupKey string
		var option LineOption

		switch match.TransportMode {
		case ctdf.TransportModeSubway:
			groupKey = "subway/" + match.PrimaryName
			option = LineOption{Label: match.Line, ExternalID: match.PrimaryIdentifier}
		case ctdf.TransportModeBus:
			groupKey = "bus/" + match.PrimaryIdentifier
			option = LineOption{ExternalID: match.PrimaryIdentifier, StopNumber: match.StopNumber}
		default:
			continue
		}

		index, exists := candidateIndex[groupKey]
		if !exists {
			candidateIndex[groupKey] = len(candidates)
			candidates = append(candidates, StopCandidate{
				Name:          match.PrimaryName,
				TransportMode: match.TransportMode,
				Lines:         []LineOption{option},
			})
			continue
		}

		candidate := &candidates[index]
		if candidate.TransportMode == ctdf.TransportModeSubway && !candidate.hasLine(option.Label) {
			candidate.Lines = append(candidate.Lines, option)
		}
	}

	return candidates
}

// Disambiguation is the outcome of picking a candidate.
// Exactly one of Resolved or Options is set.
type Disambiguation struct {
	Resolved *LineOption  `json:",omitempty"`
	Options  []LineOption `json:",omitempty"`
}

func (d *Disambiguation) NeedsChoice() bool {
	return d.Resolved == nil
}

// Disambiguate works out which lines to offer when the candidate is picked with the
// given stops already in the draft.
// Single line candidates resolve straight away. Otherwise when exactly one of the
// candidates lines is already used by subway stops in the draft that line is chosen,
// keeping the rider on the line they are travelling on.
func Disambiguate(candidate StopCandidate, draft []SelectedStop) Disambiguation {
	if len(candidate.Lines) == 1 {
		resolved := candidate.Lines[0]
		return Disambiguation{Resolved: &resolved}
	}

	usedLines := map[string]bool{}
	for _, stop := range draft {
		if stop.TransportMode() == ctdf.TransportModeSubway && stop.Line() != "" {
			usedLines[stop.Line()] = true
		}
	}

	if len(usedLines) > 0 {
		var shared []LineOption
		for _, option := range candidate.Lines {
			if usedLines[option.Label] {
				shared = append(shared, option)
			}
		}

		if len(shared) == 1 {
			return Disambiguation{Resolved: &shared[0]}
		} else if len(shared) > 1 {
			return Disambiguation{Options: shared}
		}
	}

	options := make([]LineOption, len(candidate.Lines))
	copy(options, candidate.Lines)

	return Disambiguation{Options: options}
}
