package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrplaceres/punto-venta/internal/model"
)

type stubLogRepo struct {
	entries []model.Log
}

func (r *stubLogRepo) Create(_ context.Context, l *model.Log) error {
	r.entries = append(r.entries, *l)
	return nil
}

func (r *stubLogRepo) ListRecent(_ context.Context, _ int) ([]model.Log, error) {
	return r.entries, nil
}

func TestAuditoriaWorker_PersisteLaEntrada(t *testing.T) {
	logs := &stubLogRepo{}
	w := NewAuditoriaWorker(logs)

	payload, err := json.Marshal(AuditoriaPayload{
		Usuario:     "dueno",
		Accion:      model.AccionCreate,
		Tabla:       "Venta",
		Descripcion: "Ha creado el id 7",
	})
	require.NoError(t, err)

	w.Process(context.Background(), nil, payload)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, "dueno", entry.Usuario)
	assert.Equal(t, model.AccionCreate, entry.Accion)
	assert.Equal(t, "Venta", entry.Tabla)
	assert.Equal(t, "Ha creado el id 7", entry.Descripcion)
}

func TestAuditoriaWorker_PayloadInvalido(t *testing.T) {
	logs := &stubLogRepo{}
	w := NewAuditoriaWorker(logs)

	w.Process(context.Background(), nil, json.RawMessage("{no es json"))

	assert.Empty(t, logs.entries)
}
