package location

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistrictFor(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lng float64
		district string
	}{
		// floor((0.001+0)*1000) = 1
		{"index one", 0.001, 0, "North Side District"},
		// floor(0) = 0
		{"origin", 0, 0, "Downtown District"},
		// floor(-0.0025*1000) = -3 -> 3
		{"negative sum", -0.0025, 0, "East End District"},
		// 6000 % 6 = 0
		{"wraps around", 6, 0, "Downtown District"},
		// past the int64 range: fmod(1e303, 6) = 2
		{"huge positive sum", 1e300, 0, "South Side District"},
		{"huge negative sum", -1e300, 0, "South Side District"},
		{"overflows to infinity", 1e306, 0, "Downtown District"},
		{"infinite", math.Inf(1), 0, "Downtown District"},
		{"not a number", math.NaN(), 0, "Downtown District"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.district, DistrictFor(tc.lat, tc.lng))
		})
	}
}

func TestDistrictFor_Stable(t *testing.T) {
	d := DistrictFor(40.7128, -74.0060)
	assert.Contains(t, Districts(), d)
	assert.Equal(t, d, DistrictFor(40.7128, -74.0060))
}

func TestFromCoordinates(t *testing.T) {
	loc := FromCoordinates(40.712812, -74.006019)

	assert.Equal(t, "40.7128, -74.0060", loc.Address)
	assert.Equal(t, 40.712812, loc.Latitude)
	assert.Equal(t, -74.006019, loc.Longitude)
	assert.Equal(t, DistrictFor(40.712812, -74.006019), loc.District)
}

func TestGeocode(t *testing.T) {
	g := NewGeocoder(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		loc := g.Geocode("  221B Baker St  ")
		require.Equal(t, "221B Baker St", loc.Address)
		assert.InDelta(t, centreLatitude, loc.Latitude, scatter/2+1e-9)
		assert.InDelta(t, centreLongitude, loc.Longitude, scatter/2+1e-9)
		assert.Equal(t, DistrictFor(loc.Latitude, loc.Longitude), loc.District)
	}
}

func TestGeocode_SeededSourceRepeats(t *testing.T) {
	a := NewGeocoder(rand.New(rand.NewSource(7))).Geocode("x")
	b := NewGeocoder(rand.New(rand.NewSource(7))).Geocode("x")
	assert.Equal(t, a, b)
}

func TestDistricts_ReturnsCopy(t *testing.T) {
	ds := Districts()
	ds[0] = "changed"
	assert.Equal(t, "Downtown District", Districts()[0])
}
