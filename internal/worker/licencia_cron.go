package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lrplaceres/punto-venta/internal/infra"
	"github.com/lrplaceres/punto-venta/internal/repository"
)

// StartLicenciaCron runs a daily sweep over negocios whose license is
// about to expire and emails the owners a reminder.
func StartLicenciaCron(ctx context.Context, negocios repository.NegocioRepository, mailer *infra.Mailer, avisoDias int, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		log.Info().Msgf("licencia cron started (interval %s, aviso %d días)", interval, avisoDias)
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("licencia cron shutting down")
				return
			case <-ticker.C:
				notificarLicencias(ctx, negocios, mailer, avisoDias)
			}
		}
	}()
}

func notificarLicencias(ctx context.Context, negocios repository.NegocioRepository, mailer *infra.Mailer, avisoDias int) {
	hasta := time.Now().AddDate(0, 0, avisoDias)
	rows, err := negocios.LicenciasPorVencer(ctx, hasta)
	if err != nil {
		log.Error().Err(err).Msg("licencia cron: query failed")
		return
	}
	for _, row := range rows {
		if row.Email == nil || *row.Email == "" {
			log.Warn().Uint("negocio_id", row.NegocioID).Msg("licencia cron: owner without email, skipping")
			continue
		}
		body := fmt.Sprintf(
			"Estimado %s:\n\nLa licencia del negocio %q vence el %s. Renueve antes de esa fecha para no perder el acceso a ventas y distribuciones.",
			row.Propietario, row.Nombre, row.FechaLicencia.Format("2006-01-02"),
		)
		if err := mailer.SendAviso(*row.Email, "Aviso de vencimiento de licencia", body); err != nil {
			log.Error().Err(err).Uint("negocio_id", row.NegocioID).Msg("licencia cron: send failed")
			continue
		}
		log.Info().Uint("negocio_id", row.NegocioID).Str("email", *row.Email).Msg("licencia cron: aviso enviado")
	}
}
