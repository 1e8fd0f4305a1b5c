// Package location turns device coordinates or a typed address into a models.Location.
//
// There is no geocoding service behind it: districts are derived from the coordinates
// and typed addresses get coordinates scattered around a fixed city centre.
package location

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"civiclens/models"
)

var districts = []string{
	"Downtown District",
	"North Side District",
	"South Side District",
	"East End District",
	"West Side District",
	"Central District",
}

const (
	centreLatitude  = 40.7128
	centreLongitude = -74.0060
	scatter         = 0.1
)

// Districts returns the district names DistrictFor can produce.
func Districts() []string {
	return append([]string(nil), districts...)
}

// DistrictFor picks a district from the coordinates. Same input, same district.
// The modulo stays in floating point so sums beyond the int64 range still map to a
// district; NaN and infinite sums map to the first one.
func DistrictFor(latitude, longitude float64) string {
	scaled := math.Floor((latitude + longitude) * 1000)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return districts[0]
	}
	index := int(math.Mod(math.Abs(scaled), float64(len(districts))))
	return districts[index]
}

// FormatCoordinates renders coordinates as the display address used for device locations.
func FormatCoordinates(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f, %.4f", latitude, longitude)
}

// FromCoordinates builds the location reported by a device.
func FromCoordinates(latitude, longitude float64) models.Location {
	return models.Location{
		Latitude:  latitude,
		Longitude: longitude,
		Address:   FormatCoordinates(latitude, longitude),
		District:  DistrictFor(latitude, longitude),
	}
}

// Geocoder resolves typed addresses to a location near the city centre.
type Geocoder struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGeocoder returns a geocoder drawing from rnd, or from a time-seeded source when rnd is nil.
func NewGeocoder(rnd *rand.Rand) *Geocoder {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Geocoder{rnd: rnd}
}

// Geocode keeps the address as typed and invents coordinates within 0.05 degrees of the centre.
func (g *Geocoder) Geocode(address string) models.Location {
	g.mu.Lock()
	lat := centreLatitude + (g.rnd.Float64()-0.5)*scatter
	lng := centreLongitude + (g.rnd.Float64()-0.5)*scatter
	g.mu.Unlock()

	return models.Location{
		Latitude:  lat,
		Longitude: lng,
		Address:   strings.TrimSpace(address),
		District:  DistrictFor(lat, lng),
	}
}
