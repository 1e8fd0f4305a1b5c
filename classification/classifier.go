// Package classification maps free-text issue descriptions to a category and severity,
// renders the formal municipal report and routes categories to departments.
//
// Everything here is a pure lookup over package-level tables; the functions are safe for
// concurrent use.
package classification

import (
	"strings"

	"civiclens/models"
)

type rule struct {
	keywords []string
	result   models.ClassificationResult
}

// rules are tested in order and the first match wins. The groups overlap ("water" in
// the flooding rule also matches "water leak"), so the order is part of the contract.
var rules = []rule{
	{
		keywords: []string{"pothole", "hole in road", "road damage"},
		result:   models.ClassificationResult{Category: models.Pothole, Severity: models.High, Confidence: 0.92},
	},
	{
		keywords: []string{"streetlight", "light", "lamp", "dark"},
		result:   models.ClassificationResult{Category: models.Streetlight, Severity: models.Medium, Confidence: 0.88},
	},
	{
		keywords: []string{"trash", "garbage", "litter", "waste"},
		result:   models.ClassificationResult{Category: models.Trash, Severity: models.Medium, Confidence: 0.85},
	},
	{
		keywords: []string{"flood", "water", "drain", "overflow"},
		result:   models.ClassificationResult{Category: models.Flooding, Severity: models.High, Confidence: 0.90},
	},
	{
		keywords: []string{"graffiti", "vandalism", "spray paint"},
		result:   models.ClassificationResult{Category: models.Graffiti, Severity: models.Low, Confidence: 0.82},
	},
	{
		keywords: []string{"sign", "signage", "traffic sign"},
		result:   models.ClassificationResult{Category: models.DamagedSignage, Severity: models.Medium, Confidence: 0.87},
	},
	{
		keywords: []string{"sidewalk", "walkway", "pavement"},
		result:   models.ClassificationResult{Category: models.BrokenSidewalk, Severity: models.Medium, Confidence: 0.84},
	},
	{
		// only reachable through "pipe" or "burst"; "water leak" is taken by the flooding rule
		keywords: []string{"water leak", "pipe", "burst"},
		result:   models.ClassificationResult{Category: models.WaterLeak, Severity: models.High, Confidence: 0.91},
	},
	{
		keywords: []string{"electrical", "power", "wire", "cable"},
		result:   models.ClassificationResult{Category: models.ElectricalHazard, Severity: models.Critical, Confidence: 0.95},
	},
}

var fallback = models.ClassificationResult{Category: models.Other, Severity: models.Medium, Confidence: 0.60}

// Classify assigns a category, severity and confidence to a description.
// It never fails: text matching no keyword is classified as other/medium.
func Classify(description string) models.ClassificationResult {
	desc := strings.ToLower(description)

	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(desc, keyword) {
				return r.result
			}
		}
	}

	return fallback
}
