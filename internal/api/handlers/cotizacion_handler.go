package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"erp-admin-api-server/internal/database"
	"erp-admin-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CotizacionHandler struct {
	DB *mongo.Database
}

type CotizacionItemRequest struct {
	Descripcion    string  `json:"descripcion" binding:"required"`
	Cantidad       float64 `json:"cantidad" binding:"required,gt=0"`
	PrecioUnitario float64 `json:"precioUnitario" binding:"required,gt=0"`
}

type CreateCotizacionRequest struct {
	EmpresaID            int64                   `json:"empresaId" binding:"required"`
	SedeID               *int64                  `json:"sedeId"`
	ProveedorRazonSocial string                  `json:"proveedorRazonSocial" binding:"required"`
	ProveedorRUC         string                  `json:"proveedorRuc"`
	Moneda               string                  `json:"moneda" binding:"required"`
	Items                []CotizacionItemRequest `json:"items" binding:"required,min=1,dive"`
	Observaciones        string                  `json:"observaciones"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// CreateCotizacion registers a supplier quotation in PENDIENTE state.
func (h *CotizacionHandler) CreateCotizacion(c *gin.Context) {
	var req CreateCotizacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cotizacionID, err := database.NextSequence(context.Background(), h.DB, "cotizaciones")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate quotation id"})
		return
	}

	items := make([]models.CotizacionItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.CotizacionItem{
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}

	now := time.Now()
	newCotizacion := models.Cotizacion{
		ID:                   cotizacionID,
		Codigo:               generarCodigoCotizacion(),
		EmpresaID:            req.EmpresaID,
		SedeID:               req.SedeID,
		ProveedorRazonSocial: req.ProveedorRazonSocial,
		ProveedorRUC:         req.ProveedorRUC,
		Fecha:                now,
		Moneda:               strings.ToUpper(req.Moneda),
		Estado:               models.CotizacionPendiente,
		Items:                items,
		Observaciones:        req.Observaciones,
		CreatedBy:            c.GetString("user_email"),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := h.DB.Collection("cotizaciones").InsertOne(context.Background(), newCotizacion); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quotation"})
		return
	}

	c.JSON(http.StatusCreated, newCotizacion)
}

// GetAllCotizaciones lists quotations, optionally filtered by estado and
// company.
func (h *CotizacionHandler) GetAllCotizaciones(c *gin.Context) {
	filter := bson.M{}
	if estado := c.Query("estado"); estado != "" {
		filter["estado"] = strings.ToUpper(estado)
	}
	if raw := c.Query("empresaId"); raw != "" {
		empresaID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empresaId must be numeric"})
			return
		}
		filter["empresaID"] = empresaID
	}

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}})
	cursor, err := h.DB.Collection("cotizaciones").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query quotations"})
		return
	}
	defer cursor.Close(context.Background())

	var cotizaciones []models.Cotizacion
	if err = cursor.All(context.Background(), &cotizaciones); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode quotations"})
		return
	}
	if cotizaciones == nil {
		cotizaciones = []models.Cotizacion{}
	}

	c.JSON(http.StatusOK, cotizaciones)
}

func (h *CotizacionHandler) GetCotizacionByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quotation id must be numeric"})
		return
	}

	var cotizacion models.Cotizacion
	err = h.DB.Collection("cotizaciones").FindOne(context.Background(), bson.M{"cotizacionID": id}).Decode(&cotizacion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quotation"})
		}
		return
	}

	c.JSON(http.StatusOK, cotizacion)
}

// CambiarEstado approves or rejects a pending quotation. Only
// PENDIENTE -> APROBADA/RECHAZADA is a legal transition.
func (h *CotizacionHandler) CambiarEstado(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quotation id must be numeric"})
		return
	}

	var req CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nuevoEstado := strings.ToUpper(req.Estado)
	if nuevoEstado != models.CotizacionAprobada && nuevoEstado != models.CotizacionRechazada {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado must be APROBADA or RECHAZADA"})
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Cotizacion
	err = h.DB.Collection("cotizaciones").FindOneAndUpdate(
		context.Background(),
		bson.M{"cotizacionID": id, "estado": models.CotizacionPendiente},
		bson.M{"$set": bson.M{"estado": nuevoEstado, "updatedAt": time.Now()}},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "Quotation is not pending or does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quotation"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CotizacionHandler) DeleteCotizacion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quotation id must be numeric"})
		return
	}

	result, err := h.DB.Collection("cotizaciones").DeleteOne(context.Background(), bson.M{"cotizacionID": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quotation"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted successfully"})
}

func generarCodigoCotizacion() string {
	datePart := time.Now().Format("20060102")
	randomPart := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("COT-%s-%s", datePart, randomPart)
}
