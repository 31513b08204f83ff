package routebuilder

import "fmt"

// Transfer is the annotation shown between two adjacent stops of a draft
type Transfer struct {
	FromKey string
	ToKey   string
	Label   string
}

// TransferLabel describes the change between two adjacent stops.
// The second return value is false when there is nothing to show, which is the case for
// same line continuations and bus to bus hops.
func TransferLabel(from SelectedStop, to SelectedStop) (string, bool) {
	fromMode := from.TransportMode()
	toMode := to.TransportMode()

	if fromMode != toMode {
		return fmt.Sprintf("%s→%s", fromMode.Label(), toMode.Label()), true
	}

	fromLine := from.Line()
	toLine := to.Line()
	if fromLine != "" && toLine != "" && fromLine != toLine {
		return fmt.Sprintf("%s→%s", fromLine, toLine), true
	}

	return "", false
}

func transfers(stops []SelectedStop) []Transfer {
	annotations := []Transfer{}

	for i := 1; i < len(stops); i++ {
		if label, ok := TransferLabel(stops[i-1], stops[i]); ok {
			annotations = append(annotations, Transfer{
				FromKey: stops[i-1].UniqueKey,
				ToKey:   stops[i].UniqueKey,
				Label:   label,
			})
		}
	}

	return annotations
}
