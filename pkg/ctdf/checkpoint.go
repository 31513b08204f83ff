package ctdf

type CheckpointType string

const (
	CheckpointTypeHome    CheckpointType = "home"
	CheckpointTypeWork    CheckpointType = "work"
	CheckpointTypeSubway  CheckpointType = "subway"
	CheckpointTypeBusStop CheckpointType = "bus_stop"
)

// Checkpoint is one persisted waypoint of a commute route
type Checkpoint struct {
	SequenceOrder int            `groups:"basic" csv:"sequence_order"`
	Name          string         `groups:"basic" csv:"name"`
	Type          CheckpointType `groups:"basic" csv:"type"`

	Line            string `groups:"basic" csv:"line"`
	LinkedStationID string `groups:"detailed" csv:"linked_station_id"`
	LinkedBusStopID string `groups:"detailed" csv:"linked_bus_stop_id"`

	TransferFromPrevious string `groups:"basic" csv:"transfer"`
}

func (c *Checkpoint) IsEndpoint() bool {
	return c.Type == CheckpointTypeHome || c.Type == CheckpointTypeWork
}
