// Package geospatial resolves complaint coordinates to a municipal ward and
// a suburb-level area name.
package geospatial

import (
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// DefaultWard is returned when a point falls outside every loaded polygon,
// or when the ward dataset could not be loaded at startup.
const DefaultWard = "Outside BMC Area"

type ward struct {
	name     string
	polygons []orb.Polygon
}

// WardIndex holds the named ward polygons, loaded once at startup and
// read-only thereafter.
type WardIndex struct {
	wards []ward
}

// LoadWardIndex reads the ward boundary GeoJSON. A missing or unreadable
// dataset is not fatal: the index degrades to DefaultWard for every lookup.
func LoadWardIndex(path string) *WardIndex {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("WARNING: Ward data not found at %s: %v", path, err)
		return &WardIndex{}
	}

	idx, err := parseWards(data)
	if err != nil {
		log.Printf("Error loading ward data: %v", err)
		return &WardIndex{}
	}

	log.Printf("Loaded %d BMC wards.", len(idx.wards))
	return idx
}

func parseWards(data []byte) (*WardIndex, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ward GeoJSON: %w", err)
	}

	idx := &WardIndex{}
	for _, feature := range fc.Features {
		name, _ := feature.Properties["name"].(string)
		if name == "" {
			name = "Unknown"
		}

		w := ward{name: name}
		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			w.polygons = append(w.polygons, geom)
		case orb.MultiPolygon:
			w.polygons = append(w.polygons, geom...)
		default:
			log.Printf("Skipping ward %q with non-polygon geometry %T", name, geom)
			continue
		}
		idx.wards = append(idx.wards, w)
	}
	return idx, nil
}

// Ward returns the name of the first polygon containing the point. Polygons
// are non-overlapping in the authoritative dataset, so first match wins.
func (idx *WardIndex) Ward(lat, lng float64) string {
	point := orb.Point{lng, lat} // GeoJSON order is [lng, lat]
	for _, w := range idx.wards {
		for _, polygon := range w.polygons {
			if planar.PolygonContains(polygon, point) {
				return w.name
			}
		}
	}
	return DefaultWard
}
