package classification

import (
	"testing"

	"civiclens/models"

	"github.com/stretchr/testify/assert"
)

func TestDepartmentFor_Total(t *testing.T) {
	for _, c := range models.Categories {
		dept := DepartmentFor(c)
		assert.NotEmpty(t, dept, "category %s has no department", c)
		assert.Equal(t, dept, DepartmentFor(c))
	}
}

func TestDepartmentFor_Mapping(t *testing.T) {
	expected := map[models.IssueCategory]string{
		models.Pothole:          "Department of Public Works",
		models.Streetlight:      "Department of Public Works",
		models.Trash:            "Sanitation Department",
		models.Flooding:         "Department of Water Management",
		models.Graffiti:         "Parks and Recreation Department",
		models.DamagedSignage:   "Department of Transportation",
		models.BrokenSidewalk:   "Department of Public Works",
		models.WaterLeak:        "Department of Water Management",
		models.ElectricalHazard: "Department of Public Utilities",
		models.Other:            "General Services Department",
	}

	for category, dept := range expected {
		assert.Equal(t, dept, DepartmentFor(category))
	}
	assert.Empty(t, DepartmentFor("volcano"))
}

func TestPipeline_PotholeScenario(t *testing.T) {
	result := Classify("There is a huge pothole on Main St")
	assert.Equal(t, models.Pothole, result.Category)
	assert.Equal(t, "Department of Public Works", DepartmentFor(result.Category))
}
