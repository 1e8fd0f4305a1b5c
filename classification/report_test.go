package classification

import (
	"testing"
	"time"

	"civiclens/models"

	"github.com/stretchr/testify/assert"
)

func frozenClock() time.Time {
	return time.Date(2026, 10, 17, 15, 4, 5, 0, time.UTC)
}

func TestGenerate_Template(t *testing.T) {
	gen := ReportGenerator{Now: frozenClock}
	loc := &models.Location{Latitude: 40.71, Longitude: -74.0, Address: "12 Main St", District: "Downtown District"}

	got := gen.Generate("There is a huge pothole on Main St", models.Pothole, models.High, loc)

	expected := "MUNICIPAL ISSUE REPORT\n\n" +
		"Category: Road Infrastructure Issue\n" +
		"Priority Level: High Priority\n" +
		"Location: 12 Main St\n" +
		"District: Downtown District\n\n" +
		"Issue Description:\nThere is a huge pothole on Main St\n\n" +
		"Recommended Action:\nThis high priority issue should be addressed within 24-48 hours.\n\n" +
		"Generated on: 10/17/2026, 3:04:05 PM\n" +
		"Classification Confidence: AI-powered classification system\n"

	assert.Equal(t, expected, got)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := ReportGenerator{Now: frozenClock}
	loc := &models.Location{Address: "1 Elm", District: "Central District"}

	first := gen.Generate("dark street", models.Streetlight, models.Medium, loc)
	second := gen.Generate("dark street", models.Streetlight, models.Medium, loc)

	assert.Equal(t, first, second)
}

func TestGenerate_LocationFallbacks(t *testing.T) {
	gen := ReportGenerator{Now: frozenClock}

	testCases := []struct {
		name     string
		location *models.Location
		address  string
		district string
	}{
		{"nil location", nil, "Location: Location data unavailable\n", "District: Unknown\n"},
		{"empty fields", &models.Location{}, "Location: Location data unavailable\n", "District: Unknown\n"},
		{"address only", &models.Location{Address: "9 Oak"}, "Location: 9 Oak\n", "District: Unknown\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := gen.Generate("x", models.Other, models.Low, tc.location)
			assert.Contains(t, got, tc.address)
			assert.Contains(t, got, tc.district)
		})
	}
}

func TestGenerate_RecommendedAction(t *testing.T) {
	gen := ReportGenerator{Now: frozenClock}

	testCases := map[models.Severity]string{
		models.Critical: "This critical issue requires immediate attention.",
		models.High:     "This high priority issue should be addressed within 24-48 hours.",
		models.Medium:   "This issue should be scheduled for resolution within 1 week.",
		models.Low:      "This issue should be reviewed and addressed as resources allow.",
	}

	for severity, sentence := range testCases {
		got := gen.Generate("desc", models.Other, severity, nil)
		assert.Contains(t, got, sentence, severity)
		assert.Contains(t, got, "Priority Level: "+PriorityLabel(severity))
	}
}

func TestCategoryLabel_EveryCategory(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range models.Categories {
		label := CategoryLabel(c)
		assert.NotEqual(t, string(c), label, "category %s has no label", c)
		assert.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
	}
}

func TestGenerateReport_UsesWallClock(t *testing.T) {
	got := GenerateReport("graffiti", models.Graffiti, models.Low, nil)

	assert.Contains(t, got, "Category: Public Property Vandalism")
	assert.Contains(t, got, "Generated on: ")
	assert.Contains(t, got, time.Now().Format("2006"))
}
