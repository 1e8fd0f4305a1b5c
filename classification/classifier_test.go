package classification

import (
	"strings"
	"sync"
	"testing"

	"civiclens/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KeywordGroups(t *testing.T) {
	testCases := []struct {
		name        string
		description string
		expected    models.ClassificationResult
	}{
		{"pothole", "There is a huge pothole on Main St", models.ClassificationResult{Category: models.Pothole, Severity: models.High, Confidence: 0.92}},
		{"road damage", "Road damage after the storm", models.ClassificationResult{Category: models.Pothole, Severity: models.High, Confidence: 0.92}},
		{"lamp", "The lamp post is out", models.ClassificationResult{Category: models.Streetlight, Severity: models.Medium, Confidence: 0.88}},
		{"garbage", "Garbage piling up by the park", models.ClassificationResult{Category: models.Trash, Severity: models.Medium, Confidence: 0.85}},
		{"flood", "Basement flooding on 5th", models.ClassificationResult{Category: models.Flooding, Severity: models.High, Confidence: 0.90}},
		{"graffiti", "Graffiti on the bridge", models.ClassificationResult{Category: models.Graffiti, Severity: models.Low, Confidence: 0.82}},
		{"sign", "Stop sign knocked down", models.ClassificationResult{Category: models.DamagedSignage, Severity: models.Medium, Confidence: 0.87}},
		{"sidewalk", "Cracked sidewalk near the school", models.ClassificationResult{Category: models.BrokenSidewalk, Severity: models.Medium, Confidence: 0.84}},
		{"pipe burst", "A pipe burst under the street", models.ClassificationResult{Category: models.WaterLeak, Severity: models.High, Confidence: 0.91}},
		{"cable", "Exposed electrical cable", models.ClassificationResult{Category: models.ElectricalHazard, Severity: models.Critical, Confidence: 0.95}},
		{"power", "Power outage on Elm", models.ClassificationResult{Category: models.ElectricalHazard, Severity: models.Critical, Confidence: 0.95}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.description))
		})
	}
}

func TestClassify_Fallback(t *testing.T) {
	expected := models.ClassificationResult{Category: models.Other, Severity: models.Medium, Confidence: 0.60}

	assert.Equal(t, expected, Classify(""))
	assert.Equal(t, expected, Classify("Something odd happened here"))
	assert.Equal(t, expected, Classify("   "))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	for _, desc := range []string{"POTHOLE", "PotHole in lane 2", "a deep pOtHoLe"} {
		assert.Equal(t, models.Pothole, Classify(desc).Category, desc)
	}
}

func TestClassify_RuleOrderWins(t *testing.T) {
	// "water" (flooding) is tested before "wire" (electrical)
	result := Classify("wires exposed near the water main")
	assert.Equal(t, models.ClassificationResult{Category: models.Flooding, Severity: models.High, Confidence: 0.90}, result)

	// pothole is tested first, so it beats water
	assert.Equal(t, models.Pothole, Classify("water pooling in a pothole").Category)

	// "water leak" never reaches the water leak rule
	assert.Equal(t, models.Flooding, Classify("water leak in the basement").Category)

	// substring matching: "designated" contains "sign"
	assert.Equal(t, models.DamagedSignage, Classify("the designated area").Category)
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	for _, r := range append(rules, rule{result: fallback}) {
		assert.GreaterOrEqual(t, r.result.Confidence, 0.0)
		assert.LessOrEqual(t, r.result.Confidence, 1.0)
		assert.True(t, r.result.Category.Valid())
		assert.True(t, r.result.Severity.Valid())
	}
}

func TestClassify_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, models.Trash, Classify(strings.Repeat("litter ", 3)).Category)
		}()
	}
	wg.Wait()
}
