package geospatial

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

// DefaultArea is returned when reverse geocoding fails or yields nothing
// usable.
const DefaultArea = "Mumbai"

// geocodeTimeout bounds the external reverse-geocode call.
const geocodeTimeout = 3 * time.Second

// ReverseGeocoder is the slice of the Maps client the resolver needs.
// *maps.Client satisfies it.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

type cacheKey struct {
	lat, lng float64
}

// AreaResolver reverse-geocodes coordinates to a suburb name. Results are
// cached by coordinates rounded to 4 decimals (roughly 11 m) for the process
// lifetime; values for a given key are expected to be stable, so the cache is
// never evicted. Failures are returned as DefaultArea and not cached.
type AreaResolver struct {
	geocoder ReverseGeocoder

	mu    sync.Mutex
	cache map[cacheKey]string
}

func NewAreaResolver(geocoder ReverseGeocoder) *AreaResolver {
	return &AreaResolver{
		geocoder: geocoder,
		cache:    make(map[cacheKey]string),
	}
}

func roundCoord(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Area returns the suburb-level name for the coordinates, hitting the
// external service at most once per rounded coordinate pair.
func (r *AreaResolver) Area(ctx context.Context, lat, lng float64) string {
	key := cacheKey{lat: roundCoord(lat), lng: roundCoord(lng)}

	r.mu.Lock()
	if area, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return area
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	results, err := r.geocoder.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		log.Printf("Geocoding error: %v", err)
		return DefaultArea
	}
	if len(results) == 0 {
		return DefaultArea
	}

	area := pickArea(results[0])

	r.mu.Lock()
	r.cache[key] = area
	r.mu.Unlock()

	return area
}

// pickArea prefers sublocality, then neighborhood, then locality from the
// geocoder's address components.
func pickArea(result maps.GeocodingResult) string {
	preferred := []string{"sublocality_level_1", "sublocality", "neighborhood", "locality"}
	for _, want := range preferred {
		for _, component := range result.AddressComponents {
			for _, t := range component.Types {
				if t == want && component.LongName != "" {
					return component.LongName
				}
			}
		}
	}
	return DefaultArea
}

// NewMapsClient creates the Google Maps client used for reverse geocoding.
func NewMapsClient(apiKey string) (*maps.Client, error) {
	return maps.NewClient(maps.WithAPIKey(apiKey))
}
