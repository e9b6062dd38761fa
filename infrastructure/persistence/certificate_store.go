package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/repository"
	"github.com/chamberhub/bizportal/internal/database"
)

// CertificateStore implements application.CertificateStore using GORM.
type CertificateStore struct {
	database.Repository[application.Certificate, CertificateModel]
	db database.Database
}

// NewCertificateStore creates a new CertificateStore.
func NewCertificateStore(db database.Database) CertificateStore {
	return CertificateStore{
		Repository: database.NewRepository[application.Certificate, CertificateModel](db, CertificateMapper{}, "certificate"),
		db:         db,
	}
}

// Issue numbers and stores the certificate of an approved application. When
// the application already holds a certificate, that certificate is returned.
func (s CertificateStore) Issue(ctx context.Context, app application.Application, at time.Time) (application.Certificate, error) {
	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (application.Certificate, error) {
		existing, err := s.ForApplication(ctx, app.ID())
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return application.Certificate{}, err
		}

		seq, err := s.lastSequence(ctx, application.CertificateNumberPrefix(app.ServiceType(), at.UTC().Year()))
		if err != nil {
			return application.Certificate{}, err
		}

		cert, err := application.NewCertificate(app, seq+1, at)
		if err != nil {
			return application.Certificate{}, err
		}
		return s.Create(ctx, cert)
	})
}

// lastSequence returns the highest sequence issued under prefix, or zero.
// Sequences are zero-padded to five digits and grow wider past 99999, so
// longer numbers sort first.
func (s CertificateStore) lastSequence(ctx context.Context, prefix string) (int, error) {
	var numbers []string
	err := s.DB(ctx).Model(&CertificateModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("LENGTH(number) DESC").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error
	if err != nil {
		return 0, fmt.Errorf("find last certificate number: %w", err)
	}
	if len(numbers) == 0 {
		return 0, nil
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(numbers[0], prefix))
	if err != nil {
		return 0, fmt.Errorf("parse certificate number %q: %w", numbers[0], err)
	}
	return seq, nil
}

// ForApplication returns the certificate of an application.
func (s CertificateStore) ForApplication(ctx context.Context, applicationID string) (application.Certificate, error) {
	return s.FindOne(ctx, application.WithApplicationID(applicationID))
}

// ByNumber returns a certificate by its public number.
func (s CertificateStore) ByNumber(ctx context.Context, number string) (application.Certificate, error) {
	return s.FindOne(ctx, repository.WithCondition("number", strings.ToUpper(strings.TrimSpace(number))))
}
