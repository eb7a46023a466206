package sessionrepo

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Get loads a session by id.
func (r *GormSessionRepository) Get(ctx context.Context, id string) (*dialog.Session, error) {
	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts the session row.
func (r *GormSessionRepository) Save(ctx context.Context, session *dialog.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "context", "updated_at"}),
		}).
		Create(&dto).Error
}

// Delete removes the session row if present.
func (r *GormSessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", id).Delete(&SessionDTO{}).Error
}

// DeleteIdleSince removes sessions last updated before cutoff.
func (r *GormSessionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&SessionDTO{})
	return result.RowsAffected, result.Error
}
