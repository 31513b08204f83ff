package routebuilder

import (
	"testing"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subwayMatch(name string, line string, id string) *ctdf.Stop {
	return &ctdf.Stop{PrimaryIdentifier: id, PrimaryName: name, TransportMode: ctdf.TransportModeSubway, Line: line}
}

func busMatch(name string, id string, stopNumber string) *ctdf.Stop {
	return &ctdf.Stop{PrimaryIdentifier: id, PrimaryName: name, TransportMode: ctdf.TransportModeBus, StopNumber: stopNumber}
}

func TestResolveCandidatesGroupsStationsByName(t *testing.T) {
	candidates := ResolveCandidates([]*ctdf.Stop{
		subwayMatch("Gangnam", "Line2", "222"),
		subwayMatch("Gangnam", "Line3", "D07"),
		subwayMatch("Yeoksam", "Line2", "221"),
	})

	require.Len(t, candidates, 2)

	assert.Equal(t, "Gangnam", candidates[0].Name)
	assert.Equal(t, []LineOption{
		{Label: "Line2", ExternalID: "222"},
		{Label: "Line3", ExternalID: "D07"},
	}, candidates[0].Lines)

	assert.Equal(t, "Yeoksam", candidates[1].Name)
	assert.Len(t, candidates[1].Lines, 1)

	gangnam := Disambiguate(candidates[0], nil)
	assert.True(t, gangnam.NeedsChoice())
	assert.Len(t, gangnam.Options, 2)

	yeoksam := Disambiguate(candidates[1], nil)
	require.False(t, yeoksam.NeedsChoice())
	assert.Equal(t, "221", yeoksam.Resolved.ExternalID)
}

func TestResolveCandidatesKeepsSearchOrder(t *testing.T) {
	candidates := ResolveCandidates([]*ctdf.Stop{
		subwayMatch("Yeoksam", "Line2", "221"),
		subwayMatch("Gangnam", "Line2", "222"),
		subwayMatch("Yeoksam", "Line9", "X01"),
	})

	require.Len(t, candidates, 2)
	assert.Equal(t, "Yeoksam", candidates[0].Name)
	assert.Equal(t, "Gangnam", candidates[1].Name)
	assert.Len(t, candidates[0].Lines, 2)
}

func TestResolveCandidatesKeepsFirstIdentifierPerLine(t *testing.T) {
	candidates := ResolveCandidates([]*ctdf.Stop{
		subwayMatch("Gangnam", "Line2", "222"),
		subwayMatch("Gangnam", "Line2", "222-duplicate"),
	})

	require.Len(t, candidates, 1)
	assert.Equal(t, []LineOption{{Label: "Line2", ExternalID: "222"}}, candidates[0].Lines)
}

func TestResolveCandidatesBusStops(t *testing.T) {
	candidates := ResolveCandidates([]*ctdf.Stop{
		busMatch("Gangnam Station", "BUS-1", "22001"),
		busMatch("Gangnam Station", "BUS-2", "22002"),
		busMatch("Gangnam Station", "BUS-1", "22001"),
		nil,
	})

	require.Len(t, candidates, 2)
	for _, candidate := range candidates {
		assert.Equal(t, ctdf.TransportModeBus, candidate.TransportMode)
		assert.Len(t, candidate.Lines, 1)
		assert.Empty(t, candidate.Lines[0].Label)
	}
	assert.Equal(t, "22002", candidates[1].Lines[0].StopNumber)
}

func TestDisambiguate(t *testing.T) {
	gangnam := StopCandidate{
		Name:          "Gangnam",
		TransportMode: ctdf.TransportModeSubway,
		Lines: []LineOption{
			{Label: "Line2", ExternalID: "222"},
			{Label: "Line3", ExternalID: "D07"},
			{Label: "Shinbundang", ExternalID: "D07"},
		},
	}

	tests := []struct {
		name         string
		draft        []SelectedStop
		wantResolved string
		wantOptions  []string
	}{
		{
			name:        "empty draft offers every line",
			wantOptions: []string{"Line2", "Line3", "Shinbundang"},
		},
		{
			name:         "single shared line resolves",
			draft:        []SelectedStop{subway("Seolleung", "Line2")},
			wantResolved: "Line2",
		},
		{
			name:        "several shared lines offers the shared ones",
			draft:       []SelectedStop{subway("Seolleung", "Line2"), subway("Yangjae", "Line3")},
			wantOptions: []string{"Line2", "Line3"},
		},
		{
			name:        "no shared line offers every line",
			draft:       []SelectedStop{subway("Dongdaemun", "Line4")},
			wantOptions: []string{"Line2", "Line3", "Shinbundang"},
		},
		{
			name:        "bus stops do not bias",
			draft:       []SelectedStop{bus("StopA")},
			wantOptions: []string{"Line2", "Line3", "Shinbundang"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Disambiguate(gangnam, tt.draft)

			if tt.wantResolved != "" {
				require.NotNil(t, result.Resolved)
				assert.Equal(t, tt.wantResolved, result.Resolved.Label)
				assert.Empty(t, result.Options)
				return
			}

			assert.Nil(t, result.Resolved)
			var labels []string
			for _, option := range result.Options {
				labels = append(labels, option.Label)
			}
			assert.Equal(t, tt.wantOptions, labels)
		})
	}
}
