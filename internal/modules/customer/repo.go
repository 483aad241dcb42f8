package customer

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("customer session not found")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repo) Get(ctx context.Context, id string) (Session, error) {
	var s Session
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrSessionNotFound
	}
	return s, err
}

func (r *Repo) Touch(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_seen_at": at,
			"updated_at":   at,
		}).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
}

// DeleteExpired removes sessions that expired before now.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}
