// Package services composes classification, report generation and department routing
// into issue submission, and implements the dashboard operations over an IssueStore.
package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"civiclens/classification"
	"civiclens/events"
	"civiclens/location"
	"civiclens/models"
	"civiclens/store"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	// MaxImages is how many attachments a submission keeps; extra ones are dropped.
	MaxImages = 5

	AnonymousReporter = "Anonymous Citizen"
)

var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrLocationRequired    = errors.New("location is required")
	ErrInvalidStatus       = errors.New("invalid status")
)

// SubmitRequest is what the citizen form sends. Location wins over ManualAddress when both are set.
type SubmitRequest struct {
	Description   string
	Images        []string
	Location      *models.Location
	ManualAddress string
}

// Filter narrows the dashboard list. Empty or "all" disables a field.
type Filter struct {
	Status   string
	Severity string
	Search   string
}

// Stats are the dashboard counters.
type Stats struct {
	Total      int                          `json:"total"`
	Reported   int                          `json:"reported"`
	InProgress int                          `json:"inProgress"`
	Resolved   int                          `json:"resolved"`
	Closed     int                          `json:"closed"`
	ByCategory map[models.IssueCategory]int `json:"byCategory"`
	BySeverity map[models.Severity]int      `json:"bySeverity"`
}

type IssueService struct {
	store     store.IssueStore
	geocoder  *location.Geocoder
	publisher events.Publisher
	reports   classification.ReportGenerator
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*IssueService)

// WithClock replaces the wall clock used for report dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *IssueService) { s.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *IssueService) { s.publisher = p }
}

func WithGeocoder(g *location.Geocoder) Option {
	return func(s *IssueService) { s.geocoder = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *IssueService) { s.logger = l }
}

func NewIssueService(issueStore store.IssueStore, opts ...Option) *IssueService {
	s := &IssueService{
		store:     issueStore,
		publisher: events.NopPublisher{},
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.geocoder == nil {
		s.geocoder = location.NewGeocoder(nil)
	}
	s.reports = classification.ReportGenerator{Now: s.now}
	return s
}

// Geocode resolves a typed address.
func (s *IssueService) Geocode(address string) (models.Location, error) {
	if strings.TrimSpace(address) == "" {
		return models.Location{}, ErrLocationRequired
	}
	return s.geocoder.Geocode(address), nil
}

// Submit classifies the description, renders the report, routes it to a department and
// stores the new issue.
func (s *IssueService) Submit(ctx context.Context, req SubmitRequest) (models.Issue, error) {
	if strings.TrimSpace(req.Description) == "" {
		return models.Issue{}, ErrDescriptionRequired
	}

	var loc models.Location
	switch {
	case req.Location != nil:
		loc = *req.Location
	case strings.TrimSpace(req.ManualAddress) != "":
		loc = s.geocoder.Geocode(req.ManualAddress)
	default:
		return models.Issue{}, ErrLocationRequired
	}

	images := append([]string{}, req.Images...)
	if len(images) > MaxImages {
		images = images[:MaxImages]
	}

	result := classification.Classify(req.Description)

	issue := models.Issue{
		ID:                 primitive.NewObjectID().Hex(),
		Title:              Title(result.Category, loc.District),
		Description:        req.Description,
		Category:           result.Category,
		Severity:           result.Severity,
		Confidence:         result.Confidence,
		Status:             models.Reported,
		Location:           loc,
		Images:             images,
		DateReported:       s.now(),
		ReportedBy:         AnonymousReporter,
		AssignedDepartment: classification.DepartmentFor(result.Category),
		Report:             s.reports.Generate(req.Description, result.Category, result.Severity, &loc),
	}

	if err := s.store.Save(ctx, issue); err != nil {
		return models.Issue{}, errors.Wrap(err, "saving issue")
	}

	s.logger.Info("issue reported",
		zap.String("issue_id", issue.ID),
		zap.String("category", string(issue.Category)),
		zap.String("severity", string(issue.Severity)),
		zap.String("department", issue.AssignedDepartment))

	s.publish(ctx, events.IssueReported, issue.ID, events.IssueReportedPayload{
		IssueID:            issue.ID,
		Title:              issue.Title,
		Category:           issue.Category,
		Severity:           issue.Severity,
		AssignedDepartment: issue.AssignedDepartment,
		District:           issue.Location.District,
		DateReported:       issue.DateReported,
	})

	return issue, nil
}

// Preview is what the form shows before submitting: the classification, the receiving
// department and the rendered report.
type Preview struct {
	Classification models.ClassificationResult `json:"classification"`
	Department     string                      `json:"department"`
	Report         string                      `json:"report"`
}

// Preview runs the submission pipeline without storing anything. A nil location renders
// the report's location lines as unavailable.
func (s *IssueService) Preview(description string, loc *models.Location) (Preview, error) {
	if strings.TrimSpace(description) == "" {
		return Preview{}, ErrDescriptionRequired
	}

	result := classification.Classify(description)
	return Preview{
		Classification: result,
		Department:     classification.DepartmentFor(result.Category),
		Report:         s.reports.Generate(description, result.Category, result.Severity, loc),
	}, nil
}

// Title is the dashboard headline: the upper-cased category, first underscore as a space,
// then the district.
func Title(category models.IssueCategory, district string) string {
	return strings.ToUpper(strings.Replace(string(category), "_", " ", 1)) + " - " + district
}

func (s *IssueService) Get(ctx context.Context, id string) (models.Issue, error) {
	return s.store.Get(ctx, id)
}

// List returns the stored issues, oldest first, that pass the filter.
func (s *IssueService) List(ctx context.Context, filter Filter) ([]models.Issue, error) {
	issues, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing issues")
	}

	filtered := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if filter.Matches(issue) {
			filtered = append(filtered, issue)
		}
	}
	return filtered, nil
}

// Matches reports whether the issue passes every active part of the filter.
func (f Filter) Matches(issue models.Issue) bool {
	if f.Status != "" && f.Status != "all" && string(issue.Status) != f.Status {
		return false
	}
	if f.Severity != "" && f.Severity != "all" && string(issue.Severity) != f.Severity {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(issue.Title), needle) &&
			!strings.Contains(strings.ToLower(issue.Description), needle) &&
			!strings.Contains(strings.ToLower(issue.Location.Address), needle) {
			return false
		}
	}
	return true
}

// Recent returns up to limit issues, newest first.
func (s *IssueService) Recent(ctx context.Context, limit int) ([]models.Issue, error) {
	issues, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing issues")
	}

	SortNewestFirst(issues)
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	return issues, nil
}

// SortNewestFirst orders issues by report date, newest first, keeping store order for ties.
func SortNewestFirst(issues []models.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].DateReported.After(issues[j].DateReported)
	})
}

func (s *IssueService) Stats(ctx context.Context) (Stats, error) {
	issues, err := s.store.List(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "listing issues")
	}

	stats := Stats{
		Total:      len(issues),
		ByCategory: map[models.IssueCategory]int{},
		BySeverity: map[models.Severity]int{},
	}
	for _, issue := range issues {
		switch issue.Status {
		case models.Reported:
			stats.Reported++
		case models.InProgress:
			stats.InProgress++
		case models.Resolved:
			stats.Resolved++
		case models.Closed:
			stats.Closed++
		}
		stats.ByCategory[issue.Category]++
		stats.BySeverity[issue.Severity]++
	}
	return stats, nil
}

// UpdateStatus sets any valid status regardless of the current one.
func (s *IssueService) UpdateStatus(ctx context.Context, id string, status models.Status) (models.Issue, error) {
	if !status.Valid() {
		return models.Issue{}, ErrInvalidStatus
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return models.Issue{}, err
	}

	s.logger.Info("issue status updated",
		zap.String("issue_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)))

	s.publish(ctx, events.IssueStatusUpdated, id, events.IssueStatusUpdatedPayload{
		IssueID:   id,
		OldStatus: current.Status,
		NewStatus: status,
		ChangedAt: s.now(),
	})

	current.Status = status
	return current, nil
}

func (s *IssueService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("issue deleted", zap.String("issue_id", id))
	s.publish(ctx, events.IssueDeleted, id, map[string]string{"issue_id": id})
	return nil
}

// publish never fails the caller: the issue is already stored.
func (s *IssueService) publish(ctx context.Context, eventType, issueID string, payload interface{}) {
	event, err := events.NewEvent(eventType, issueID, payload)
	if err == nil {
		err = s.publisher.Publish(ctx, event)
	}
	if err != nil {
		s.logger.Warn("publishing event failed",
			zap.String("event_type", eventType),
			zap.String("issue_id", issueID),
			zap.Error(err))
	}
}
