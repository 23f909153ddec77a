// Package cases provides case record persistence for the storage server.
package cases

import (
	"context"

	"github.com/cjmtools/caseintake/internal/models"
)

type Repository interface {
	Append(ctx context.Context, record *models.CaseRecord) error
	SelectAll(ctx context.Context) ([]models.CaseRecord, error)
}
