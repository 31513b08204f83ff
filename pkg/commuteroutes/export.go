package commuteroutes

import (
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
)

// CheckpointsCSV renders the checkpoints of a route in sequence order
func CheckpointsCSV(route *ctdf.CommuteRoute) ([]byte, error) {
	checkpoints := route.Checkpoints
	if checkpoints == nil {
		checkpoints = []ctdf.Checkpoint{}
	}

	return gocsv.MarshalBytes(&checkpoints)
}

// Summarise builds the list view of a route, stop count excludes the home and work endpoints
func Summarise(route *ctdf.CommuteRoute) (ctdf.CommuteRouteSummary, error) {
	var summary ctdf.CommuteRouteSummary
	if err := copier.Copy(&summary, route); err != nil {
		return summary, err
	}

	for _, checkpoint := range route.Checkpoints {
		if !checkpoint.IsEndpoint() {
			summary.NumberOfStops++
		}
	}

	return summary, nil
}
