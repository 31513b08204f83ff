package routebuilder

import (
	"testing"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCheckpointsToWork(t *testing.T) {
	stops := []SelectedStop{
		subway("Gangnam", "Line2"),
		subway("Gangnam", "Shinbundang"),
		bus("StopA"),
	}

	checkpoints := MapCheckpoints(stops, ctdf.RouteDirectionToWork)

	require.Len(t, checkpoints, 5)
	assert.Equal(t, ctdf.Checkpoint{SequenceOrder: 1, Name: "home", Type: ctdf.CheckpointTypeHome}, checkpoints[0])
	assert.Equal(t, ctdf.Checkpoint{
		SequenceOrder:   2,
		Name:            "Gangnam",
		Type:            ctdf.CheckpointTypeSubway,
		Line:            "Line2",
		LinkedStationID: "Gangnam-Line2",
	}, checkpoints[1])
	assert.Equal(t, "Line2→Shinbundang", checkpoints[2].TransferFromPrevious)
	assert.Equal(t, ctdf.Checkpoint{
		SequenceOrder:        4,
		Name:                 "StopA",
		Type:                 ctdf.CheckpointTypeBusStop,
		LinkedBusStopID:      "bus-StopA",
		TransferFromPrevious: "Subway→Bus",
	}, checkpoints[3])
	assert.Equal(t, ctdf.Checkpoint{SequenceOrder: 5, Name: "work", Type: ctdf.CheckpointTypeWork}, checkpoints[4])
}

func TestMapCheckpointsToHome(t *testing.T) {
	checkpoints := MapCheckpoints([]SelectedStop{bus("StopA")}, ctdf.RouteDirectionToHome)

	require.Len(t, checkpoints, 3)
	assert.Equal(t, ctdf.CheckpointTypeWork, checkpoints[0].Type)
	assert.Equal(t, ctdf.CheckpointTypeHome, checkpoints[2].Type)
	assert.Equal(t, 3, checkpoints[2].SequenceOrder)
}

func TestRestoreDraft(t *testing.T) {
	stops := []SelectedStop{subway("Gangnam", "Line2"), bus("StopA")}
	checkpoints := MapCheckpoints(stops, ctdf.RouteDirectionToWork)

	draft := RestoreDraft(checkpoints, sequentialKeys())

	restored := draft.Stops()
	require.Len(t, restored, 2)
	assert.Equal(t, "key-1", restored[0].UniqueKey)
	assert.Equal(t, "Gangnam-Line2", restored[0].ExternalID)
	assert.Equal(t, "Line2", restored[0].Line())
	assert.Equal(t, ctdf.TransportModeBus, restored[1].TransportMode())
	assert.Equal(t, "bus-StopA", restored[1].ExternalID)
	assert.True(t, draft.Validation().IsValid)
}
