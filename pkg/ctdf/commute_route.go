package ctdf

import "time"

const CommuteRouteIDFormat = "COMMUTE:ROUTE:%s"

type RouteDirection string

const (
	RouteDirectionToWork RouteDirection = "toWork"
	RouteDirectionToHome RouteDirection = "toHome"
)

func (d RouteDirection) Valid() bool {
	return d == RouteDirectionToWork || d == RouteDirectionToHome
}

// Endpoints returns the checkpoint types a route in this direction starts and finishes at
func (d RouteDirection) Endpoints() (CheckpointType, CheckpointType) {
	if d == RouteDirectionToHome {
		return CheckpointTypeWork, CheckpointTypeHome
	}

	return CheckpointTypeHome, CheckpointTypeWork
}

type CommuteRoute struct {
	PrimaryIdentifier string `groups:"basic"`
	UserID            string `groups:"internal"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`

	Name      string         `groups:"basic"`
	Direction RouteDirection `groups:"basic"`

	Checkpoints []Checkpoint `groups:"detailed"`
}

// CommuteRouteSummary is the list view of a CommuteRoute
type CommuteRouteSummary struct {
	PrimaryIdentifier    string
	Name                 string
	Direction            RouteDirection
	ModificationDateTime time.Time

	NumberOfStops int
}
