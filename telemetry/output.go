package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// LinkRecord is one CSV row of link status.
type LinkRecord struct {
	Step        int     `csv:"step"`
	Name        string  `csv:"name"`
	Kind        string  `csv:"kind"`
	Spec        int     `csv:"spec"`
	StartX      float64 `csv:"start_x"`
	StartY      float64 `csv:"start_y"`
	StartZ      float64 `csv:"start_z"`
	EndX        float64 `csv:"end_x"`
	EndY        float64 `csv:"end_y"`
	EndZ        float64 `csv:"end_z"`
	Length      float64 `csv:"length"`
	StartRadius float64 `csv:"start_radius"`
	EndRadius   float64 `csv:"end_radius"`
	Blocked     bool    `csv:"blocked"`
	Blocker     string  `csv:"blocker"`
}

// OutputManager handles structured simulation output with CSV logging.
type OutputManager struct {
	dir       string
	linksFile *os.File

	// Track if headers have been written
	linksHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	linksPath := filepath.Join(dir, "links.csv")
	f, err := os.Create(linksPath)
	if err != nil {
		return nil, fmt.Errorf("creating links.csv: %w", err)
	}
	om.linksFile = f

	return om, nil
}

// WriteRecords appends link records to links.csv. The first write
// includes headers; subsequent writes skip them.
func (om *OutputManager) WriteRecords(records []LinkRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.linksHeaderWritten {
		if err := gocsv.Marshal(records, om.linksFile); err != nil {
			return fmt.Errorf("writing links: %w", err)
		}
		om.linksHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.linksFile); err != nil {
			return fmt.Errorf("writing links: %w", err)
		}
	}

	return nil
}

// Close closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.linksFile == nil {
		return nil
	}
	return om.linksFile.Close()
}
