package access

import (
	"testing"
	"time"

	"erp-admin-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureAccesos() []models.AccesoInstalacion {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	salida := base.Add(4 * time.Hour)
	return []models.AccesoInstalacion{
		{
			ID: 1, FechaHora: base, EmpresaID: 5, SedeID: 1,
			NumeroDocumento: "87654321", NombrePersona: "Carlos Rojas",
			FechaHoraSalidaDefinitiva: &salida,
		},
		{
			ID: 2, FechaHora: base.Add(2 * time.Hour), EmpresaID: 5, SedeID: 2,
			NumeroDocumento: "11223344", NombrePersona: "Ana Torres",
			VehiculoNroPlaca: "ABC-123",
		},
		{
			ID: 3, FechaHora: base.Add(26 * time.Hour), EmpresaID: 7, SedeID: 1,
			NumeroDocumento: "99887766", NombrePersona: "Luis Paredes",
			Observaciones: "trae laptop",
		},
	}
}

func TestApplySortsMostRecentFirst(t *testing.T) {
	got, err := Apply(fixtureAccesos(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := 0; i < len(got)-1; i++ {
		assert.False(t, got[i].FechaHora.Before(got[i+1].FechaHora),
			"records must be ordered by fechaHora descending")
	}
	assert.Equal(t, int64(3), got[0].ID)
}

func TestApplyFiltersComposeConjunctively(t *testing.T) {
	records := fixtureAccesos()

	byEmpresa, err := Apply(records, ListFilter{EmpresaID: "5"})
	require.NoError(t, err)
	byFecha, err := Apply(records, ListFilter{FechaDesde: "2026-03-10", FechaHasta: "2026-03-10"})
	require.NoError(t, err)
	both, err := Apply(records, ListFilter{EmpresaID: "5", FechaDesde: "2026-03-10", FechaHasta: "2026-03-10"})
	require.NoError(t, err)

	// The conjunction must be exactly the intersection of the two filters.
	inBoth := map[int64]bool{}
	for _, a := range byEmpresa {
		for _, b := range byFecha {
			if a.ID == b.ID {
				inBoth[a.ID] = true
			}
		}
	}
	assert.Len(t, both, len(inBoth))
	for _, r := range both {
		assert.True(t, inBoth[r.ID])
	}
	assert.Len(t, both, 2)
}

func TestApplyIDCoercion(t *testing.T) {
	records := fixtureAccesos()

	asString, err := Apply(records, ListFilter{EmpresaID: "5"})
	require.NoError(t, err)
	withSpaces, err := Apply(records, ListFilter{EmpresaID: " 5 "})
	require.NoError(t, err)

	assert.Equal(t, asString, withSpaces)
	require.Len(t, asString, 2)
	for _, r := range asString {
		assert.Equal(t, int64(5), r.EmpresaID)
	}

	_, err = Apply(records, ListFilter{EmpresaID: "abc"})
	assert.Error(t, err)
}

func TestApplyEstadoFilter(t *testing.T) {
	records := fixtureAccesos()

	dentro, err := Apply(records, ListFilter{Estado: "dentro"})
	require.NoError(t, err)
	fuera, err := Apply(records, ListFilter{Estado: "fuera"})
	require.NoError(t, err)

	assert.Len(t, dentro, 2)
	assert.Len(t, fuera, 1)
	assert.Equal(t, int64(1), fuera[0].ID)

	_, err = Apply(records, ListFilter{Estado: "limbo"})
	assert.Error(t, err)
}

func TestApplyDateRangeIsInclusive(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	records := []models.AccesoInstalacion{
		{ID: 1, FechaHora: base},                                      // 00:00:00 on desde
		{ID: 2, FechaHora: base.Add(24*time.Hour - time.Second)},      // 23:59:59 on hasta
		{ID: 3, FechaHora: base.Add(24 * time.Hour)},                  // next day
		{ID: 4, FechaHora: base.Add(-time.Second)},                    // previous day
	}

	got, err := Apply(records, ListFilter{FechaDesde: "2026-03-10", FechaHasta: "2026-03-10"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := []int64{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestApplyTextoSearchesFixedFieldSet(t *testing.T) {
	records := fixtureAccesos()

	byPlaca, err := Apply(records, ListFilter{Texto: "abc-123"})
	require.NoError(t, err)
	require.Len(t, byPlaca, 1)
	assert.Equal(t, int64(2), byPlaca[0].ID)

	byObs, err := Apply(records, ListFilter{Texto: "LAPTOP"})
	require.NoError(t, err)
	require.Len(t, byObs, 1)
	assert.Equal(t, int64(3), byObs[0].ID)

	none, err := Apply(records, ListFilter{Texto: "no-match"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Entry then exit: the record starts under dentro and moves to fuera once the
// departure timestamp is set, with nothing else changing its classification.
func TestEntryExitLifecycleClassification(t *testing.T) {
	entrada := models.AccesoInstalacion{
		ID: 10, FechaHora: time.Date(2026, 4, 1, 8, 30, 0, 0, time.Local),
		EmpresaID: 5, SedeID: 1, NumeroDocumento: "87654321",
	}
	records := []models.AccesoInstalacion{entrada}

	dentro, err := Apply(records, ListFilter{Estado: "dentro"})
	require.NoError(t, err)
	require.Len(t, dentro, 1)
	assert.Nil(t, dentro[0].FechaHoraSalidaDefinitiva)

	salida := entrada.FechaHora.Add(3 * time.Hour)
	records[0].FechaHoraSalidaDefinitiva = &salida

	dentro, err = Apply(records, ListFilter{Estado: "dentro"})
	require.NoError(t, err)
	assert.Empty(t, dentro)

	fuera, err := Apply(records, ListFilter{Estado: "fuera"})
	require.NoError(t, err)
	require.Len(t, fuera, 1)
	assert.Equal(t, int64(10), fuera[0].ID)
}
