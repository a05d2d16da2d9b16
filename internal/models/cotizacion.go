package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estado values for a purchasing quotation.
const (
	CotizacionPendiente = "PENDIENTE"
	CotizacionAprobada  = "APROBADA"
	CotizacionRechazada = "RECHAZADA"
)

type CotizacionItem struct {
	Descripcion    string  `bson:"descripcion" json:"descripcion"`
	Cantidad       float64 `bson:"cantidad" json:"cantidad"`
	PrecioUnitario float64 `bson:"precioUnitario" json:"precioUnitario"`
}

// Cotizacion is a purchasing quotation from a supplier.
type Cotizacion struct {
	OID                  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID                   int64              `bson:"cotizacionID" json:"id"`
	Codigo               string             `bson:"codigo" json:"codigo"`
	EmpresaID            int64              `bson:"empresaID" json:"empresaId"`
	SedeID               *int64             `bson:"sedeID,omitempty" json:"sedeId,omitempty"`
	ProveedorRazonSocial string             `bson:"proveedorRazonSocial" json:"proveedorRazonSocial"`
	ProveedorRUC         string             `bson:"proveedorRUC,omitempty" json:"proveedorRuc,omitempty"`
	Fecha                time.Time          `bson:"fecha" json:"fecha"`
	Moneda               string             `bson:"moneda" json:"moneda"` // PEN, USD
	Estado               string             `bson:"estado" json:"estado"`
	Items                []CotizacionItem   `bson:"items" json:"items"`
	Observaciones        string             `bson:"observaciones,omitempty" json:"observaciones,omitempty"`
	CreatedBy            string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Total sums the line items.
func (c Cotizacion) Total() float64 {
	var t float64
	for _, it := range c.Items {
		t += it.Cantidad * it.PrecioUnitario
	}
	return t
}
