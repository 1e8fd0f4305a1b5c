// Package store persists reported issues behind the IssueStore interface.
package store

import (
	"context"

	"civiclens/models"

	"github.com/pkg/errors"
)

// ErrIssueNotFound is returned when no issue has the requested id.
var ErrIssueNotFound = errors.New("issue not found")

// IssueStore is the repository collaborator for issues. List returns issues in the
// order they were saved.
type IssueStore interface {
	Save(ctx context.Context, issue models.Issue) error
	List(ctx context.Context) ([]models.Issue, error)
	Get(ctx context.Context, id string) (models.Issue, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	Delete(ctx context.Context, id string) error
}
