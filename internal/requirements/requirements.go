// Package requirements maps requirement keys to their display labels.
package requirements

import "context"

// Source provides the requirement key to label table.
type Source interface {
	List(ctx context.Context) (map[string]string, error)
}

// StaticSource serves the fixed table below.
// TODO(issue/17): replace with a source backed by the jobs backend.
type StaticSource struct{}

var staticTable = map[string]string{
	"O_LEVEL":           "O Level",
	"LANGUAGE_ENGLISH":  "English",
	"DRIVING_LICENSE_C": "Category C Driving License",
}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (s *StaticSource) List(ctx context.Context) (map[string]string, error) {
	table := make(map[string]string, len(staticTable))
	for k, v := range staticTable {
		table[k] = v
	}
	return table, nil
}

// Known reports whether key exists in the requirement table. Callers reject
// unknown keys at the boundary instead of dropping them silently.
func Known(table map[string]string, key string) bool {
	_, ok := table[key]
	return ok
}
