package classification

import "civiclens/models"

const (
	PublicWorks     = "Department of Public Works"
	Sanitation      = "Sanitation Department"
	WaterManagement = "Department of Water Management"
	ParksRecreation = "Parks and Recreation Department"
	Transportation  = "Department of Transportation"
	PublicUtilities = "Department of Public Utilities"
	GeneralServices = "General Services Department"
)

var departments = map[models.IssueCategory]string{
	models.Pothole:          PublicWorks,
	models.Streetlight:      PublicWorks,
	models.Trash:            Sanitation,
	models.Flooding:         WaterManagement,
	models.Graffiti:         ParksRecreation,
	models.DamagedSignage:   Transportation,
	models.BrokenSidewalk:   PublicWorks,
	models.WaterLeak:        WaterManagement,
	models.ElectricalHazard: PublicUtilities,
	models.Other:            GeneralServices,
}

// DepartmentFor returns the department responsible for a category, or "" for a
// category outside the enum.
func DepartmentFor(category models.IssueCategory) string {
	return departments[category]
}
