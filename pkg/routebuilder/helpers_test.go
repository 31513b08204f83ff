package routebuilder

import (
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
)

func subway(name string, line string) SelectedStop {
	return SelectedStop{UniqueKey: name + "/" + line, ExternalID: name + "-" + line, Name: name, Leg: SubwayLeg{Line: line}}
}

func bus(name string) SelectedStop {
	return SelectedStop{UniqueKey: "bus/" + name, ExternalID: "bus-" + name, Name: name, Leg: BusLeg{}}
}

func subwayChoice(name string, line string) StopChoice {
	return StopChoice{Name: name, Line: line, ExternalID: name + "-" + line, TransportMode: ctdf.TransportModeSubway}
}

func busChoice(name string) StopChoice {
	return StopChoice{Name: name, ExternalID: "bus-" + name, TransportMode: ctdf.TransportModeBus}
}

func sequentialKeys() DraftOption {
	n := 0
	return WithKeyGenerator(func() string {
		n++
		return fmt.Sprintf("key-%d", n)
	})
}
