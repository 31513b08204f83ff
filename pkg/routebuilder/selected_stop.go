package routebuilder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
)

var (
	ErrLineOnBusStop        = errors.New("bus stops cannot be assigned a line")
	ErrStopNumberOnStation  = errors.New("subway stations cannot be assigned a stop number")
	ErrUnknownTransportMode = errors.New("unknown transport mode")
)

// Leg holds the mode specific part of a SelectedStop.
// The only implementations are SubwayLeg and BusLeg.
type Leg interface {
	TransportMode() ctdf.TransportMode
	isLeg()
}

type SubwayLeg struct {
	Line string
}

func (SubwayLeg) TransportMode() ctdf.TransportMode { return ctdf.TransportModeSubway }
func (SubwayLeg) isLeg()                            {}

type BusLeg struct {
	StopNumber string
}

func (BusLeg) TransportMode() ctdf.TransportMode { return ctdf.TransportModeBus }
func (BusLeg) isLeg()                            {}

// SelectedStop is one committed waypoint of a draft route.
// UniqueKey is only used to address the entry when reordering.
type SelectedStop struct {
	UniqueKey  string
	ExternalID string
	Name       string

	Leg Leg
}

func (s SelectedStop) TransportMode() ctdf.TransportMode {
	if s.Leg == nil {
		return ""
	}

	return s.Leg.TransportMode()
}

// Line is the subway line of the stop, empty for bus stops and unresolved stations
func (s SelectedStop) Line() string {
	if leg, ok := s.Leg.(SubwayLeg); ok {
		return leg.Line
	}

	return ""
}

func (s SelectedStop) StopNumber() string {
	if leg, ok := s.Leg.(BusLeg); ok {
		return leg.StopNumber
	}

	return ""
}

type selectedStopJSON struct {
	UniqueKey     string
	ExternalID    string
	Name          string
	TransportMode ctdf.TransportMode
	Line          string `json:",omitempty"`
	StopNumber    string `json:",omitempty"`
}

func (s SelectedStop) MarshalJSON() ([]byte, error) {
	return json.Marshal(selectedStopJSON{
		UniqueKey:     s.UniqueKey,
		ExternalID:    s.ExternalID,
		Name:          s.Name,
		TransportMode: s.TransportMode(),
		Line:          s.Line(),
		StopNumber:    s.StopNumber(),
	})
}

func (s *SelectedStop) UnmarshalJSON(data []byte) error {
	var decoded selectedStopJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	leg, err := newLeg(decoded.TransportMode, decoded.Line, decoded.StopNumber)
	if err != nil {
		return err
	}

	*s = SelectedStop{
		UniqueKey:  decoded.UniqueKey,
		ExternalID: decoded.ExternalID,
		Name:       decoded.Name,
		Leg:        leg,
	}

	return nil
}

func newLeg(mode ctdf.TransportMode, line string, stopNumber string) (Leg, error) {
	switch mode {
	case ctdf.TransportModeSubway:
		if stopNumber != "" {
			return nil, fmt.Errorf("%w: %q", ErrStopNumberOnStation, stopNumber)
		}
		return SubwayLeg{Line: line}, nil
	case ctdf.TransportModeBus:
		if line != "" {
			return nil, ErrLineOnBusStop
		}
		return BusLeg{StopNumber: stopNumber}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownTransportMode, mode)
	}
}
