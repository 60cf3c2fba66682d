package benchmark

import (
	"encoding/json"
	"os"
	"time"
)

// AdoptedMeasures is the on-disk list of measures the company has already
// implemented. Adopted measures are dropped from recommendations.
type AdoptedMeasures struct {
	Items []*AdoptedMeasure
}

type AdoptedMeasure struct {
	Measure   string
	System    string
	AdoptedAt time.Time
}

// AdoptedFromFile loads the list from path. An empty file is a valid empty
// list.
func AdoptedFromFile(path string) (*AdoptedMeasures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &AdoptedMeasures{}, nil
	}

	var adopted AdoptedMeasures
	if err := json.NewDecoder(file).Decode(&adopted); err != nil {
		return nil, err
	}
	return &adopted, nil
}

func (a *AdoptedMeasures) Append(s *AdoptedMeasures) {
	a.Items = append(a.Items, s.Items...)
}

func (a *AdoptedMeasures) Measures() []string {
	measures := make([]string, 0)
	for _, item := range a.Items {
		measures = append(measures, item.Measure)
	}
	return measures
}

func (a *AdoptedMeasures) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return err
	}
	return nil
}

// ToAdopted converts the current records into adopted entries, used when the
// user marks a whole recommendation as implemented.
func (r *Records) ToAdopted() *AdoptedMeasures {
	adopted := &AdoptedMeasures{}
	for _, record := range r.Items {
		adopted.Items = append(adopted.Items, &AdoptedMeasure{
			Measure:   record.MeasureType,
			System:    record.System,
			AdoptedAt: time.Now().UTC(),
		})
	}
	return adopted
}
