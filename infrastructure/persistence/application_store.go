package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/repository"
	"github.com/chamberhub/bizportal/internal/database"
	"gorm.io/gorm"
)

// ApplicationStore implements application.ApplicationStore using GORM.
type ApplicationStore struct {
	database.Repository[application.Application, ApplicationModel]
	db database.Database
}

// NewApplicationStore creates a new ApplicationStore.
func NewApplicationStore(db database.Database) ApplicationStore {
	return ApplicationStore{
		Repository: database.NewRepository[application.Application, ApplicationModel](db, ApplicationMapper{}, "application"),
		db:         db,
	}
}

// Get loads an application and its extension row.
func (s ApplicationStore) Get(ctx context.Context, id string) (application.Application, error) {
	app, err := s.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return application.Application{}, err
	}
	return s.withDetails(ctx, app)
}

func (s ApplicationStore) withDetails(ctx context.Context, app application.Application) (application.Application, error) {
	switch app.ServiceType() {
	case application.ServiceTypeESG:
		var model ESGDetailsModel
		err := s.DB(ctx).Where("application_id = ?", app.ID()).First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return app, nil
		}
		if err != nil {
			return application.Application{}, fmt.Errorf("load esg details: %w", err)
		}
		return app.WithESG(esgToDomain(model)), nil
	case application.ServiceTypeKnowledgeSharing:
		var model KnowledgeSharingDetailsModel
		err := s.DB(ctx).Where("application_id = ?", app.ID()).First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return app, nil
		}
		if err != nil {
			return application.Application{}, fmt.Errorf("load knowledge sharing details: %w", err)
		}
		return app.WithKnowledgeSharing(knowledgeSharingToDomain(model)), nil
	default:
		return app, nil
	}
}

// Create inserts the parent row and its extension row in one transaction.
func (s ApplicationStore) Create(ctx context.Context, app application.Application) (application.Application, error) {
	err := database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		model := s.Mapper().ToModel(app)
		if err := s.DB(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("create application: %w", err)
		}
		return s.saveDetails(ctx, app)
	})
	if err != nil {
		return application.Application{}, err
	}
	return app, nil
}

// Update writes the parent row and replaces the extension row.
func (s ApplicationStore) Update(ctx context.Context, app application.Application) (application.Application, error) {
	err := database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		model := s.Mapper().ToModel(app)
		result := s.DB(ctx).Model(&ApplicationModel{ID: app.ID()}).Select("*").Omit("id", "created_at").Updates(&model)
		if result.Error != nil {
			return fmt.Errorf("update application: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: application %s", database.ErrNotFound, app.ID())
		}
		return s.saveDetails(ctx, app)
	})
	if err != nil {
		return application.Application{}, err
	}
	return app, nil
}

func (s ApplicationStore) saveDetails(ctx context.Context, app application.Application) error {
	if d := app.ESG(); d != nil {
		model := esgToModel(app.ID(), *d)
		if err := s.DB(ctx).Save(&model).Error; err != nil {
			return fmt.Errorf("save esg details: %w", err)
		}
	}
	if d := app.KnowledgeSharing(); d != nil {
		model := knowledgeSharingToModel(app.ID(), *d)
		if err := s.DB(ctx).Save(&model).Error; err != nil {
			return fmt.Errorf("save knowledge sharing details: %w", err)
		}
	}
	return nil
}

// StatusCounts returns the number of applications per status. Statuses with
// no applications are reported as zero.
func (s ApplicationStore) StatusCounts(ctx context.Context) (map[application.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.DB(ctx).Model(&ApplicationModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}

	counts := make(map[application.Status]int64, len(application.Statuses()))
	for _, st := range application.Statuses() {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[application.Status(r.Status)] = r.Count
	}
	return counts, nil
}

// KnowledgeSharingOrphans returns the IDs of KNOWLEDGE_SHARING applications
// that have no extension row, oldest first.
func (s ApplicationStore) KnowledgeSharingOrphans(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.DB(ctx).Model(&ApplicationModel{}).
		Joins("LEFT JOIN knowledge_sharing_applications ks ON ks.application_id = applications.id").
		Where("applications.service_type = ?", string(application.ServiceTypeKnowledgeSharing)).
		Where("ks.application_id IS NULL").
		Order("applications.created_at ASC").
		Pluck("applications.id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("find knowledge sharing orphans: %w", err)
	}
	return ids, nil
}

// DeleteByIDs hard-deletes parent rows. Extension rows, notes and
// certificates cascade.
func (s ApplicationStore) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.DeleteBy(ctx, repository.WithIDIn(ids))
}
