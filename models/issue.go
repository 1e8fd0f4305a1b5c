package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole          IssueCategory = "pothole"
	Streetlight      IssueCategory = "streetlight"
	Trash            IssueCategory = "trash"
	Flooding         IssueCategory = "flooding"
	Graffiti         IssueCategory = "graffiti"
	DamagedSignage   IssueCategory = "damaged_signage"
	BrokenSidewalk   IssueCategory = "broken_sidewalk"
	WaterLeak        IssueCategory = "water_leak"
	ElectricalHazard IssueCategory = "electrical_hazard"
	Other            IssueCategory = "other"
)

// Categories lists every category in declaration order.
var Categories = []IssueCategory{
	Pothole, Streetlight, Trash, Flooding, Graffiti,
	DamagedSignage, BrokenSidewalk, WaterLeak, ElectricalHazard, Other,
}

// Valid reports whether c is one of the known categories.
func (c IssueCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Severity enum, ordered by urgency
type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// Severities lists every severity from least to most urgent.
var Severities = []Severity{Low, Medium, High, Critical}

// Rank returns the urgency order of s (0 for low) or -1 when s is unknown.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return i
		}
	}
	return -1
}

func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// Status enum. Any status may follow any other.
type Status string

const (
	Reported   Status = "reported"
	InProgress Status = "in_progress"
	Resolved   Status = "resolved"
	Closed     Status = "closed"
)

var Statuses = []Status{Reported, InProgress, Resolved, Closed}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ClassificationResult is the category, severity and confidence assigned together to a description.
type ClassificationResult struct {
	Category   IssueCategory `json:"category"`
	Severity   Severity      `json:"severity"`
	Confidence float64       `json:"confidence"`
}

// Location is where an issue was observed. Coordinates are never range checked.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address" json:"address"`
	District  string  `bson:"district" json:"district"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID                 string        `bson:"_id" json:"id"`
	Title              string        `bson:"title" json:"title"`
	Description        string        `bson:"description" json:"description"`
	Category           IssueCategory `bson:"category" json:"category"`
	Severity           Severity      `bson:"severity" json:"severity"`
	Confidence         float64       `bson:"confidence" json:"confidence"`
	Status             Status        `bson:"status" json:"status"`
	Location           Location      `bson:"location" json:"location"`
	Images             []string      `bson:"images" json:"images"`
	DateReported       time.Time     `bson:"dateReported" json:"dateReported"`
	ReportedBy         string        `bson:"reportedBy" json:"reportedBy"`
	AssignedDepartment string        `bson:"assignedDepartment" json:"assignedDepartment"`
	Report             string        `bson:"report,omitempty" json:"report,omitempty"`
}

// Clone returns a copy of the issue that shares no slices with i.
func (i Issue) Clone() Issue {
	out := i
	if i.Images != nil {
		out.Images = append([]string(nil), i.Images...)
	}
	return out
}
