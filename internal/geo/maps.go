// Package geo wraps the third-party mapping service: map and marker models
// for the page templates, and postal-code geocoding through the places API.
package geo

import (
	"encoding/json"

	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/models"
)

// Coordinates for centering a map around Singapore.
const (
	sgLatitude  = 1.3521
	sgLongitude = 103.8198
	sgMapZoom   = 11

	// JobMapZoom is the zoom for a map showing an individual job.
	JobMapZoom = 15
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) MarshalBinary() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Coordinates) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, c)
}

// Bounds is a rectangular geographic region.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// SingaporeBounds approximates Singapore's territory. The service only
// operates within the country, so coordinates outside are rejected, never
// clamped.
var SingaporeBounds = Bounds{
	North: 1.4775,
	South: 1.1356,
	East:  104.1215,
	West:  103.5582,
}

func (b Bounds) Contains(c Coordinates) bool {
	return c.Latitude <= b.North && c.Latitude >= b.South &&
		c.Longitude <= b.East && c.Longitude >= b.West
}

// AnimationDrop makes a marker fall into place when it is added.
const AnimationDrop = "DROP"

// Marker is one job pin on a map.
type Marker struct {
	Position  Coordinates `json:"position"`
	Title     string      `json:"title"`
	Animation string      `json:"animation"`
	JobID     string      `json:"jobId"`
}

// Map is the model behind one map element on a page.
type Map struct {
	ElementID string      `json:"elementId"`
	Center    Coordinates `json:"center"`
	Zoom      int         `json:"zoom"`
	Markers   []Marker    `json:"markers"`
}

// Option adjusts a new map.
type Option func(*Map)

func WithCenter(c Coordinates) Option {
	return func(m *Map) {
		m.Center = c
	}
}

func WithZoom(zoom int) Option {
	return func(m *Map) {
		m.Zoom = zoom
	}
}

// NewMap creates the map model for the given page element, centered and
// zoomed on Singapore unless options say otherwise.
func NewMap(elementID string, opts ...Option) (*Map, error) {
	if elementID == "" {
		return nil, errors.Invariant("map element id should not be empty", nil)
	}

	m := &Map{
		ElementID: elementID,
		Center:    Coordinates{Latitude: sgLatitude, Longitude: sgLongitude},
		Zoom:      sgMapZoom,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// AddMarker pins a job's stored coordinates onto the map.
func AddMarker(m *Map, job models.Job) (*Marker, error) {
	if m == nil {
		return nil, errors.Invariant("map should not be nil", nil)
	}

	marker := Marker{
		Position: Coordinates{
			Latitude:  job.JobLocation.Latitude,
			Longitude: job.JobLocation.Longitude,
		},
		Title:     job.JobTitle,
		Animation: AnimationDrop,
		JobID:     job.JobID,
	}
	m.Markers = append(m.Markers, marker)
	return &m.Markers[len(m.Markers)-1], nil
}
