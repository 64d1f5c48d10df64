package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
)

// AuditoriaPayload carries the fields of an audit trail entry through Redis.
type AuditoriaPayload struct {
	Usuario     string `json:"usuario"`
	Accion      string `json:"accion"`
	Tabla       string `json:"tabla"`
	Descripcion string `json:"descripcion"`
}

// AuditoriaWorker persists audit entries dequeued from the pool.
type AuditoriaWorker struct {
	logs repository.LogRepository
}

func NewAuditoriaWorker(logs repository.LogRepository) *AuditoriaWorker {
	return &AuditoriaWorker{logs: logs}
}

func (w *AuditoriaWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload AuditoriaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("auditoria: invalid payload")
		return
	}
	entry := &model.Log{
		Usuario:     payload.Usuario,
		Accion:      payload.Accion,
		Tabla:       payload.Tabla,
		Descripcion: payload.Descripcion,
	}
	if err := w.logs.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("usuario", payload.Usuario).
			Str("accion", payload.Accion).
			Msg("auditoria: failed to persist entry, sending to DLQ")
		if dlqErr := SendToDLQ(ctx, rdb, QueueAuditoria, raw, err.Error()); dlqErr != nil {
			log.Error().Err(dlqErr).Msg("auditoria: failed to send to DLQ")
		}
		return
	}
	log.Debug().
		Str("usuario", payload.Usuario).
		Str("accion", payload.Accion).
		Str("tabla", payload.Tabla).
		Msg("auditoria: entry persisted")
}
