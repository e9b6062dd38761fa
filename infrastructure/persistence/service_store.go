package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/internal/database"
	"gorm.io/gorm/clause"
)

// ServiceStore implements directory.ServiceStore using GORM.
type ServiceStore struct {
	database.Repository[directory.Service, ServiceModel]
}

// NewServiceStore creates a new ServiceStore.
func NewServiceStore(db database.Database) ServiceStore {
	return ServiceStore{
		Repository: database.NewRepository[directory.Service, ServiceModel](db, ServiceMapper{}, "service"),
	}
}

// Upsert inserts services or replaces existing rows with the same ID. The
// original creation time is preserved.
func (s ServiceStore) Upsert(ctx context.Context, services []directory.Service) error {
	if len(services) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]ServiceModel, len(services))
	for i, svc := range services {
		models[i] = s.Mapper().ToModel(svc)
		models[i].UpdatedAt = now
		if models[i].CreatedAt.IsZero() {
			models[i].CreatedAt = now
		}
	}

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "name_ar", "description", "description_ar", "department",
			"platform", "channel_type", "url", "tags", "featured",
			"golden_vendor", "sort_order", "updated_at",
		}),
	}).Create(&models)
	if result.Error != nil {
		return fmt.Errorf("upsert services: %w", result.Error)
	}
	return nil
}

// Departments returns the distinct department names in alphabetical order.
func (s ServiceStore) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	err := s.DB(ctx).Model(&ServiceModel{}).
		Where("department <> ''").
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}
