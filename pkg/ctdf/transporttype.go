package ctdf

type TransportMode string

const (
	TransportModeSubway TransportMode = "subway"
	TransportModeBus    TransportMode = "bus"
)

var transportModeLabels = map[TransportMode]string{
	TransportModeSubway: "Subway",
	TransportModeBus:    "Bus",
}

// Label is the human readable name used in transfer annotations
func (m TransportMode) Label() string {
	if label, exists := transportModeLabels[m]; exists {
		return label
	}

	return string(m)
}

func (m TransportMode) Valid() bool {
	_, exists := transportModeLabels[m]
	return exists
}

// TransportModes lists every supported mode in display order
func TransportModes() []TransportMode {
	return []TransportMode{TransportModeSubway, TransportModeBus}
}
