package routebuilder

import (
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
)

// MapCheckpoints turns a committed stop sequence into the checkpoint records saved for a
// route, bracketed by the home and work endpoints in the order the direction implies
func MapCheckpoints(stops []SelectedStop, direction ctdf.RouteDirection) []ctdf.Checkpoint {
	origin, destination := direction.Endpoints()

	checkpoints := []ctdf.Checkpoint{
		{
			SequenceOrder: 1,
			Name:          string(origin),
			Type:          origin,
		},
	}

	for i, stop := range stops {
		checkpoint := ctdf.Checkpoint{
			SequenceOrder: i + 2,
			Name:          stop.Name,
			Line:          stop.Line(),
		}

		switch stop.TransportMode() {
		case ctdf.TransportModeSubway:
			checkpoint.Type = ctdf.CheckpointTypeSubway
			checkpoint.LinkedStationID = stop.ExternalID
		case ctdf.TransportModeBus:
			checkpoint.Type = ctdf.CheckpointTypeBusStop
			checkpoint.LinkedBusStopID = stop.ExternalID
		}

		if i > 0 {
			checkpoint.TransferFromPrevious, _ = TransferLabel(stops[i-1], stop)
		}

		checkpoints = append(checkpoints, checkpoint)
	}

	checkpoints = append(checkpoints, ctdf.Checkpoint{
		SequenceOrder: len(stops) + 2,
		Name:          string(destination),
		Type:          destination,
	})

	return checkpoints
}

// RestoreDraft rebuilds a draft from saved checkpoints so an existing route can be edited.
// Endpoint checkpoints are skipped and every stop gets a fresh key.
func RestoreDraft(checkpoints []ctdf.Checkpoint, options ...DraftOption) *Draft {
	draft := NewDraft(options...)

	for _, checkpoint := range checkpoints {
		stop := SelectedStop{
			UniqueKey: draft.newKey(),
			Name:      checkpoint.Name,
		}

		switch checkpoint.Type {
		case ctdf.CheckpointTypeSubway:
			stop.ExternalID = checkpoint.LinkedStationID
			stop.Leg = SubwayLeg{Line: checkpoint.Line}
		case ctdf.CheckpointTypeBusStop:
			stop.ExternalID = checkpoint.LinkedBusStopID
			stop.Leg = BusLeg{}
		default:
			continue
		}

		draft.stops = append(draft.stops, stop)
	}

	return draft
}
