package repository

import (
	"context"

	"github.com/lrplaceres/punto-venta/internal/model"

	"gorm.io/gorm"
)

// LogRepository persists audit entries. Append-only.
type LogRepository interface {
	Create(ctx context.Context, l *model.Log) error
	ListRecent(ctx context.Context, limit int) ([]model.Log, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Create(ctx context.Context, l *model.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logRepo) ListRecent(ctx context.Context, limit int) ([]model.Log, error) {
	var logs []model.Log
	err := r.db.WithContext(ctx).Order("fecha_creado DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
