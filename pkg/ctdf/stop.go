package ctdf

// Stop is a searchable station or bus stop.
// Subway stations serving several lines are stored once per line, all sharing PrimaryName.
type Stop struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	TransportMode TransportMode `groups:"basic"`

	Line       string `groups:"basic" yaml:"Line,omitempty"`
	StopNumber string `groups:"basic" yaml:"StopNumber,omitempty"`

	Location *Location `groups:"detailed" yaml:"Location,omitempty"`

	Active bool `groups:"internal"`
}
