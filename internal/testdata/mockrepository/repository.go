package mockrepository

import (
	"context"

	"dashboard-csv-exporter/internal/model"
	"dashboard-csv-exporter/internal/repository"

	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.ExportRepository = &Repository{}

func (m *Repository) CreateBatch(ctx context.Context, records []model.ExportRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}
