package routebuilder

import (
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Draft is the ordered list of stops chosen while building one route.
// It is owned by a single editing session and is not safe for concurrent use.
type Draft struct {
	stops      []SelectedStop
	advisory   string
	searchText string

	newKey func() string
}

type DraftOption func(*Draft)

// WithKeyGenerator replaces the uuid based generator used for SelectedStop.UniqueKey
func WithKeyGenerator(generator func() string) DraftOption {
	return func(d *Draft) {
		d.newKey = generator
	}
}

func NewDraft(options ...DraftOption) *Draft {
	draft := &Draft{
		stops:  []SelectedStop{},
		newKey: uuid.NewString,
	}

	for _, option := range options {
		option(draft)
	}

	return draft
}

// Stops returns a copy of the committed sequence
func (d *Draft) Stops() []SelectedStop {
	return slices.Clone(d.stops)
}

func (d *Draft) Len() int {
	return len(d.stops)
}

// Advisory is the first warning from the last successful append, if any
func (d *Draft) Advisory() string {
	return d.advisory
}

func (d *Draft) SearchText() string {
	return d.searchText
}

func (d *Draft) SetSearchText(text string) {
	d.searchText = text
}

// Validation is computed from the current stops on every call
func (d *Draft) Validation() ValidationResult {
	return Validate(d.stops)
}

func (d *Draft) Transfers() []Transfer {
	return transfers(d.stops)
}

// Append adds a stop to the end of the draft.
// The draft only changes when the resulting sequence validates, otherwise a
// *RejectedError with the first blocking message is returned and the draft, including
// its search text, is left as it was.
func (d *Draft) Append(choice StopChoice) error {
	leg, err := newLeg(choice.TransportMode, choice.Line, choice.StopNumber)
	if err != nil {
		return err
	}

	candidate := SelectedStop{
		UniqueKey:  d.newKey(),
		ExternalID: choice.ExternalID,
		Name:       choice.Name,
		Leg:        leg,
	}

	next := append(slices.Clone(d.stops), candidate)

	result := Validate(next)
	if !result.IsValid {
		return &RejectedError{
			Message: result.Errors[0],
			Result:  result,
		}
	}

	d.stops = next
	d.advisory = ""
	if len(result.Warnings) > 0 {
		d.advisory = result.Warnings[0]
	}
	d.searchText = ""

	return nil
}

// Pick disambiguates the candidate against the current stops and appends it when no
// choice from the user is needed
func (d *Draft) Pick(candidate StopCandidate) (Disambiguation, error) {
	disambiguation := Disambiguate(candidate, d.stops)

	if disambiguation.Resolved == nil {
		return disambiguation, nil
	}

	return disambiguation, d.Append(candidate.Choose(*disambiguation.Resolved))
}

// Remove deletes the stop at index, a draft is never allowed to drop below one stop
func (d *Draft) Remove(index int) error {
	if len(d.stops) <= 1 {
		return ErrMinimumStops
	}

	if index < 0 || index >= len(d.stops) {
		return ErrStopIndexOutOfRange
	}

	d.stops = slices.Delete(d.stops, index, index+1)
	d.advisory = ""

	return nil
}

// Reorder moves the stop identified by key so it ends up at toIndex
func (d *Draft) Reorder(key string, toIndex int) error {
	fromIndex := slices.IndexFunc(d.stops, func(stop SelectedStop) bool {
		return stop.UniqueKey == key
	})
	if fromIndex == -1 {
		return ErrUnknownStopKey
	}

	if toIndex < 0 || toIndex >= len(d.stops) {
		return ErrStopIndexOutOfRange
	}

	moved := d.stops[fromIndex]
	d.stops = slices.Delete(d.stops, fromIndex, fromIndex+1)
	d.stops = slices.Insert(d.stops, toIndex, moved)

	return nil
}

type draftJSON struct {
	Stops      []SelectedStop
	Advisory   string
	SearchText string
}

func (d *Draft) MarshalJSON() ([]byte, error) {
	return json.Marshal(draftJSON{
		Stops:      d.stops,
		Advisory:   d.advisory,
		SearchText: d.searchText,
	})
}

func (d *Draft) UnmarshalJSON(data []byte) error {
	var decoded draftJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	d.stops = decoded.Stops
	if d.stops == nil {
		d.stops = []SelectedStop{}
	}
	d.advisory = decoded.Advisory
	d.searchText = decoded.SearchText

	if d.newKey == nil {
		d.newKey = uuid.NewString
	}

	return nil
}
