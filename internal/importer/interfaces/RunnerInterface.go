package interfaces

import (
	"context"

	"sid/internal/models"
)

// RunnerInterface is the slice of the import service the scheduler needs.
type RunnerInterface interface {
	RunImport(ctx context.Context) (*models.RunReport, error)
}
