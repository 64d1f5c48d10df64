package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

// auditar enqueues an audit entry. The sink is fire-and-forget: a nil
// dispatcher (unit tests) or a failed push never fails the operation.
func auditar(ctx context.Context, d *worker.Dispatcher, usuario, accion, tabla string, id uint) {
	if d == nil {
		return
	}
	var verbo string
	switch accion {
	case model.AccionCreate:
		verbo = "creado"
	case model.AccionUpdate:
		verbo = "editado"
	case model.AccionDelete:
		verbo = "eliminado"
	}
	payload := worker.AuditoriaPayload{
		Usuario:     usuario,
		Accion:      accion,
		Tabla:       tabla,
		Descripcion: fmt.Sprintf("Ha %s el id %d", verbo, id),
	}
	if err := d.EnqueueAuditoria(ctx, payload); err != nil {
		log.Warn().Err(err).Str("tabla", tabla).Msg("auditoria: enqueue failed")
	}
}
