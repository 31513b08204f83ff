package dataimporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// stopDefinition is one stop as written in a seed file
type stopDefinition struct {
	PrimaryIdentifier string             `yaml:"PrimaryIdentifier" csv:"id"`
	PrimaryName       string             `yaml:"PrimaryName" csv:"name"`
	TransportMode     ctdf.TransportMode `yaml:"TransportMode" csv:"mode"`
	Line              string             `yaml:"Line" csv:"line"`
	StopNumber        string             `yaml:"StopNumber" csv:"stop_number"`
	Longitude         float64            `yaml:"Longitude" csv:"longitude"`
	Latitude          float64            `yaml:"Latitude" csv:"latitude"`
	Inactive          bool               `yaml:"Inactive" csv:"inactive"`
}

func (d *stopDefinition) toStop() (*ctdf.Stop, error) {
	if d.PrimaryIdentifier == "" || d.PrimaryName == "" {
		return nil, errors.New("stop needs an identifier and a name")
	}

	switch d.TransportMode {
	case ctdf.TransportModeSubway:
		if d.Line == "" || d.StopNumber != "" {
			return nil, fmt.Errorf("subway stop %s must have a line and no stop number", d.PrimaryIdentifier)
		}
	case ctdf.TransportModeBus:
		if d.Line != "" {
			return nil, fmt.Errorf("bus stop %s cannot have a line", d.PrimaryIdentifier)
		}
	default:
		return nil, fmt.Errorf("stop %s has unknown transport mode %q", d.PrimaryIdentifier, d.TransportMode)
	}

	stop := &ctdf.Stop{
		PrimaryIdentifier: d.PrimaryIdentifier,
		PrimaryName:       d.PrimaryName,
		TransportMode:     d.TransportMode,
		Line:              d.Line,
		StopNumber:        d.StopNumber,
		Active:            !d.Inactive,
	}
	if d.Longitude != 0 || d.Latitude != 0 {
		stop.Location = ctdf.NewPointLocation(d.Longitude, d.Latitude)
	}

	return stop, nil
}

func convertDefinitions(definitions []*stopDefinition) ([]*ctdf.Stop, error) {
	stops := make([]*ctdf.Stop, 0, len(definitions))
	for _, definition := range definitions {
		stop, err := definition.toStop()
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	return stops, nil
}

// DecodeYAMLStops reads a multi document YAML stream, one stop per document
func DecodeYAMLStops(reader io.Reader) ([]*ctdf.Stop, error) {
	decoder := yaml.NewDecoder(reader)

	var definitions []*stopDefinition
	for {
		var definition stopDefinition
		err := decoder.Decode(&definition)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		definitions = append(definitions, &definition)
	}

	return convertDefinitions(definitions)
}

// DecodeCSVStops reads a CSV file with a header row
func DecodeCSVStops(reader io.Reader) ([]*ctdf.Stop, error) {
	var definitions []*stopDefinition
	if err := gocsv.Unmarshal(reader, &definitions); err != nil {
		return nil, err
	}

	return convertDefinitions(definitions)
}

func decodeStopsFile(path string) ([]*ctdf.Stop, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAMLStops(file)
	case ".csv":
		return DecodeCSVStops(file)
	default:
		log.Debug().Str("path", path).Msg("Skipping file with unknown extension")
		return nil, nil
	}
}

// LoadStopsDirectory walks the directory decoding every YAML and CSV stop file in it
func LoadStopsDirectory(directory string) ([]*ctdf.Stop, error) {
	var stops []*ctdf.Stop

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading stops file")

			fileStops, err := decodeStopsFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			stops = append(stops, fileStops...)

			return nil
		})

	return stops, err
}

// ImportStops upserts the stops into the collection keyed on their identifier
func ImportStops(ctx context.Context, collection *mongo.Collection, stops []*ctdf.Stop) error {
	if len(stops) == 0 {
		return nil
	}

	operations := make([]mongo.WriteModel, 0, len(stops))
	for _, stop := range stops {
		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"primaryidentifier": stop.PrimaryIdentifier}).
			SetReplacement(stop).
			SetUpsert(true))
	}

	result, err := collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}

	log.Info().
		Int64("inserted", result.UpsertedCount).
		Int64("updated", result.ModifiedCount).
		Msg("Imported stops")

	return nil
}
