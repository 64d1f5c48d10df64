package service

import "time"

const fechaLayout = "2006-01-02"

// parseFecha accepts a plain date.
func parseFecha(s string) (time.Time, error) {
	return time.Parse(fechaLayout, s)
}

// parseFechaHora accepts RFC3339 or a bare datetime, which is what the
// frontends actually send.
func parseFechaHora(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

func formatFecha(t time.Time) string {
	return t.Format(fechaLayout)
}

func formatFechaHora(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
