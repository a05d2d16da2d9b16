package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccesoEstado(t *testing.T) {
	acceso := AccesoInstalacion{ID: 1, FechaHora: time.Now()}
	assert.Equal(t, EstadoDentro, acceso.Estado())

	salida := time.Now()
	acceso.FechaHoraSalidaDefinitiva = &salida
	assert.Equal(t, EstadoFuera, acceso.Estado())
}

func TestAccesoEstadoNeverBoth(t *testing.T) {
	salida := time.Now()
	for _, acceso := range []AccesoInstalacion{
		{ID: 1},
		{ID: 2, FechaHoraSalidaDefinitiva: &salida},
	} {
		dentro := acceso.Estado() == EstadoDentro
		fuera := acceso.Estado() == EstadoFuera
		assert.NotEqual(t, dentro, fuera, "estado must be exactly one of dentro/fuera")
	}
}

func TestPersonaNombreCompleto(t *testing.T) {
	p := Persona{Nombres: "María Elena", ApellidoPaterno: "Quispe"}
	assert.Equal(t, "María Elena Quispe", p.NombreCompleto())

	p.ApellidoMaterno = "Huamán"
	assert.Equal(t, "María Elena Quispe Huamán", p.NombreCompleto())
}

func TestCotizacionTotal(t *testing.T) {
	c := Cotizacion{Items: []CotizacionItem{
		{Descripcion: "Guantes", Cantidad: 10, PrecioUnitario: 2.5},
		{Descripcion: "Cascos", Cantidad: 3, PrecioUnitario: 40},
	}}
	assert.InDelta(t, 145.0, c.Total(), 0.0001)
}
