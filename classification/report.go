package classification

import (
	"fmt"
	"strings"
	"time"

	"civiclens/models"
)

// TimestampLayout is how the generation time is printed in a report.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

const (
	missingAddress  = "Location data unavailable"
	missingDistrict = "Unknown"
)

var categoryLabels = map[models.IssueCategory]string{
	models.Pothole:          "Road Infrastructure Issue",
	models.Streetlight:      "Street Lighting Issue",
	models.Trash:            "Waste Management Issue",
	models.Flooding:         "Drainage and Water Issue",
	models.Graffiti:         "Public Property Vandalism",
	models.DamagedSignage:   "Traffic Signage Issue",
	models.BrokenSidewalk:   "Pedestrian Infrastructure Issue",
	models.WaterLeak:        "Water System Issue",
	models.ElectricalHazard: "Electrical Safety Hazard",
	models.Other:            "General Infrastructure Issue",
}

var severityLabels = map[models.Severity]string{
	models.Low:      "Low Priority",
	models.Medium:   "Medium Priority",
	models.High:     "High Priority",
	models.Critical: "Critical Priority",
}

var recommendedActions = map[models.Severity]string{
	models.Critical: "critical issue requires immediate attention",
	models.High:     "high priority issue should be addressed within 24-48 hours",
	models.Medium:   "issue should be scheduled for resolution within 1 week",
	models.Low:      "issue should be reviewed and addressed as resources allow",
}

// CategoryLabel returns the display label of a category.
func CategoryLabel(category models.IssueCategory) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return string(category)
}

// PriorityLabel returns the display label of a severity.
func PriorityLabel(severity models.Severity) string {
	if label, ok := severityLabels[severity]; ok {
		return label
	}
	return string(severity)
}

// RecommendedAction returns the follow-up sentence fragment for a severity.
// Anything that is not critical, high or medium gets the low-priority wording.
func RecommendedAction(severity models.Severity) string {
	if action, ok := recommendedActions[severity]; ok {
		return action
	}
	return recommendedActions[models.Low]
}

// ReportGenerator renders municipal reports. Now is read once per report.
type ReportGenerator struct {
	Now func() time.Time
}

// Generate renders the fixed-template report. A nil location, or empty address and
// district strings, print the fallback text instead.
func (g ReportGenerator) Generate(description string, category models.IssueCategory, severity models.Severity, location *models.Location) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	address, district := missingAddress, missingDistrict
	if location != nil {
		if location.Address != "" {
			address = location.Address
		}
		if location.District != "" {
			district = location.District
		}
	}

	var b strings.Builder
	b.WriteString("MUNICIPAL ISSUE REPORT\n\n")
	fmt.Fprintf(&b, "Category: %s\n", CategoryLabel(category))
	fmt.Fprintf(&b, "Priority Level: %s\n", PriorityLabel(severity))
	fmt.Fprintf(&b, "Location: %s\n", address)
	fmt.Fprintf(&b, "District: %s\n\n", district)
	fmt.Fprintf(&b, "Issue Description:\n%s\n\n", description)
	fmt.Fprintf(&b, "Recommended Action:\nThis %s.\n\n", RecommendedAction(severity))
	fmt.Fprintf(&b, "Generated on: %s\n", now().Format(TimestampLayout))
	b.WriteString("Classification Confidence: AI-powered classification system\n")

	return b.String()
}

// GenerateReport renders a report stamped with the current time.
func GenerateReport(description string, category models.IssueCategory, severity models.Severity, location *models.Location) string {
	return ReportGenerator{}.Generate(description, category, severity, location)
}
