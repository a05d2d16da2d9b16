package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"erp-admin-api-server/internal/access"
	"erp-admin-api-server/internal/database"
	"erp-admin-api-server/internal/lookup"
	"erp-admin-api-server/internal/models"
	"erp-admin-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	accesoCollection  = "acceso_instalacion"
	detalleCollection = "acceso_instalacion_detalle"
)

type AccesoHandler struct {
	DB      *mongo.Database
	Hub     *socket.Hub
	History *lookup.MongoHistory
}

// AccesoEvento goes out on the websocket feed on every entry and exit.
type AccesoEvento struct {
	Tipo   string                   `json:"tipo"` // INGRESO, SALIDA
	Acceso models.AccesoInstalacion `json:"acceso"`
}

type CreateAccesoRequest struct {
	SedeID             int64  `json:"sedeId" binding:"required"`
	EmpresaID          int64  `json:"empresaId" binding:"required"`
	NumeroDocumento    string `json:"numeroDocumento" binding:"required"`
	TipoDocIdentidadID int64  `json:"tipoDocIdentidadId" binding:"required"`
	NombrePersona      string `json:"nombrePersona" binding:"required"`

	TipoAccesoID  *int64 `json:"tipoAccesoId"`
	MotivoID      *int64 `json:"motivoId"`
	TipoPersonaID *int64 `json:"tipoPersonaId"`

	VehiculoNroPlaca string `json:"vehiculoNroPlaca"`
	VehiculoMarca    string `json:"vehiculoMarca"`
	VehiculoModelo   string `json:"vehiculoModelo"`
	VehiculoColor    string `json:"vehiculoColor"`

	TipoEquipoID *int64 `json:"tipoEquipoId"`
	EquipoMarca  string `json:"equipoMarca"`
	EquipoSerie  string `json:"equipoSerie"`

	PersonaFirmaDestinoVisitaID *int64 `json:"personaFirmaDestinoVisitaId"`
	NombreDestinoVisita         string `json:"nombreDestinoVisita"`

	Observaciones        string `json:"observaciones"`
	IncidenteResaltante  bool   `json:"incidenteResaltante"`
	DescripcionIncidente string `json:"descripcionIncidente"`
}

type UpdateAccesoRequest struct {
	FechaHora          *time.Time `json:"fechaHora"`
	SedeID             *int64     `json:"sedeId"`
	EmpresaID          *int64     `json:"empresaId"`
	NumeroDocumento    *string    `json:"numeroDocumento"`
	TipoDocIdentidadID *int64     `json:"tipoDocIdentidadId"`
	NombrePersona      *string    `json:"nombrePersona"`

	TipoAccesoID  *int64 `json:"tipoAccesoId"`
	MotivoID      *int64 `json:"motivoId"`
	TipoPersonaID *int64 `json:"tipoPersonaId"`

	VehiculoNroPlaca *string `json:"vehiculoNroPlaca"`
	VehiculoMarca    *string `json:"vehiculoMarca"`
	VehiculoModelo   *string `json:"vehiculoModelo"`
	VehiculoColor    *string `json:"vehiculoColor"`

	TipoEquipoID *int64  `json:"tipoEquipoId"`
	EquipoMarca  *string `json:"equipoMarca"`
	EquipoSerie  *string `json:"equipoSerie"`

	PersonaFirmaDestinoVisitaID *int64  `json:"personaFirmaDestinoVisitaId"`
	NombreDestinoVisita         *string `json:"nombreDestinoVisita"`

	Observaciones        *string `json:"observaciones"`
	IncidenteResaltante  *bool   `json:"incidenteResaltante"`
	DescripcionIncidente *string `json:"descripcionIncidente"`

	FechaHoraSalidaDefinitiva *time.Time `json:"fechaHoraSalidaDefinitiva"`
}

type ResolveScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// CreateAcceso registers a check-in. fechaHora is set here, never by the
// caller, and the companion INGRESO detail row is created in the same request;
// if the detail insert fails the parent insert is compensated with a delete.
func (h *AccesoHandler) CreateAcceso(c *gin.Context) {
	var req CreateAccesoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IncidenteResaltante && req.DescripcionIncidente == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descripcionIncidente is required when incidenteResaltante is set"})
		return
	}

	accesoID, err := database.NextSequence(context.Background(), h.DB, accesoCollection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate access record id"})
		return
	}

	now := time.Now()
	newAcceso := models.AccesoInstalacion{
		ID:                          accesoID,
		FechaHora:                   now,
		SedeID:                      req.SedeID,
		EmpresaID:                   req.EmpresaID,
		NumeroDocumento:             req.NumeroDocumento,
		TipoDocIdentidadID:          req.TipoDocIdentidadID,
		NombrePersona:               req.NombrePersona,
		TipoAccesoID:                req.TipoAccesoID,
		MotivoID:                    req.MotivoID,
		TipoPersonaID:               req.TipoPersonaID,
		VehiculoNroPlaca:            req.VehiculoNroPlaca,
		VehiculoMarca:               req.VehiculoMarca,
		VehiculoModelo:              req.VehiculoModelo,
		VehiculoColor:               req.VehiculoColor,
		TipoEquipoID:                req.TipoEquipoID,
		EquipoMarca:                 req.EquipoMarca,
		EquipoSerie:                 req.EquipoSerie,
		PersonaFirmaDestinoVisitaID: req.PersonaFirmaDestinoVisitaID,
		NombreDestinoVisita:         req.NombreDestinoVisita,
		Observaciones:               req.Observaciones,
		IncidenteResaltante:         req.IncidenteResaltante,
		DescripcionIncidente:        req.DescripcionIncidente,
		CreatedBy:                   c.GetString("user_email"),
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}

	collection := h.DB.Collection(accesoCollection)
	result, err := collection.InsertOne(context.Background(), newAcceso)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access record"})
		return
	}

	if err := h.insertDetalle(context.Background(), accesoID, models.MovimientoIngreso, now, newAcceso.CreatedBy); err != nil {
		// Standalone Mongo has no multi-document transaction; compensate.
		_, _ = collection.DeleteOne(context.Background(), bson.M{"_id": result.InsertedID})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry movement record"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(AccesoEvento{Tipo: models.MovimientoIngreso, Acceso: newAcceso})
	}

	c.JSON(http.StatusCreated, newAcceso)
}

// GetAllAccesos lists access records, most recent first, with conjunctive
// optional filters.
func (h *AccesoHandler) GetAllAccesos(c *gin.Context) {
	filter := access.ListFilter{
		EmpresaID:  c.Query("empresaId"),
		SedeID:     c.Query("sedeId"),
		Texto:      c.Query("texto"),
		FechaDesde: c.Query("fechaDesde"),
		FechaHasta: c.Query("fechaHasta"),
		Estado:     c.Query("estado"),
	}

	opts := options.Find().SetSort(bson.D{{Key: "fechaHora", Value: -1}})
	cursor, err := h.DB.Collection(accesoCollection).Find(context.Background(), bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query access records"})
		return
	}
	defer cursor.Close(context.Background())

	var accesos []models.AccesoInstalacion
	if err = cursor.All(context.Background(), &accesos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode access records"})
		return
	}

	accesos, err = access.Apply(accesos, filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if accesos == nil {
		accesos = []models.AccesoInstalacion{}
	}

	c.JSON(http.StatusOK, accesos)
}

// GetAccesoByID resolves a record by its numeric id. Used directly by the
// exit flow when the id is typed by hand.
func (h *AccesoHandler) GetAccesoByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Access record id must be numeric"})
		return
	}

	acceso, err := h.findAcceso(context.Background(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "No access record with that id"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve access record"})
		}
		return
	}

	c.JSON(http.StatusOK, acceso)
}

// ResolveScan decodes a scanned exit ticket and resolves its record. A
// payload that does not parse is a 400, distinct from the 404 of an unknown
// id. Resolution is a pure read; only the later update closes the visit.
func (h *AccesoHandler) ResolveScan(c *gin.Context) {
	var req ResolveScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := access.ParseScanPayload(req.Payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scan payload is not valid"})
		return
	}

	acceso, err := h.findAcceso(context.Background(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "No access record with that id"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve access record"})
		}
		return
	}

	c.JSON(http.StatusOK, acceso)
}

// UpdateAcceso applies a partial update. Setting fechaHoraSalidaDefinitiva
// closes the visit; a visit can only be closed once, enforced atomically by
// the update filter.
func (h *AccesoHandler) UpdateAcceso(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Access record id must be numeric"})
		return
	}

	var req UpdateAccesoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.findAcceso(context.Background(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "No access record with that id"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve access record"})
		}
		return
	}

	closing := req.FechaHoraSalidaDefinitiva != nil
	if closing && current.FechaHoraSalidaDefinitiva != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Visitor already marked as departed"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	applyUpdateFields(set, req)

	collection := h.DB.Collection(accesoCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.AccesoInstalacion
	err = collection.FindOneAndUpdate(
		context.Background(),
		accesoUpdateFilter(id, closing),
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if closing && err == mongo.ErrNoDocuments {
			// A concurrent request closed the visit after our pre-read.
			c.JSON(http.StatusConflict, gin.H{"error": "Visitor already marked as departed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update access record"})
		return
	}

	if closing {
		if err := h.insertDetalle(context.Background(), id, models.MovimientoSalida, *req.FechaHoraSalidaDefinitiva, c.GetString("user_email")); err != nil {
			// Restore the pre-update snapshot so none of this request's
			// mutations survive its failure.
			_, _ = collection.ReplaceOne(context.Background(), bson.M{"accesoID": id}, current)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exit movement record"})
			return
		}
		if h.Hub != nil {
			h.Hub.Broadcast(AccesoEvento{Tipo: models.MovimientoSalida, Acceso: updated})
		}
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAcceso hard-deletes a record and its movement rows. Admin-gated at
// the route level.
func (h *AccesoHandler) DeleteAcceso(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Access record id must be numeric"})
		return
	}

	result, err := h.DB.Collection(accesoCollection).DeleteOne(context.Background(), bson.M{"accesoID": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete access record"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No access record with that id"})
		return
	}

	_, _ = h.DB.Collection(detalleCollection).DeleteMany(context.Background(), bson.M{"accesoID": id})

	c.JSON(http.StatusOK, gin.H{"message": "Access record deleted successfully"})
}

// GetUltimoPorDocumento returns the classification fields of the most recent
// access for a document number, for entry-form pre-fill.
func (h *AccesoHandler) GetUltimoPorDocumento(c *gin.Context) {
	numeroDocumento := c.Param("numeroDocumento")

	prior, err := h.History.LastByDocumento(context.Background(), numeroDocumento)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query access history"})
		return
	}
	if prior == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No prior access for that document"})
		return
	}

	c.JSON(http.StatusOK, prior)
}

// GetDetallesByAcceso lists the movement rows of one record.
func (h *AccesoHandler) GetDetallesByAcceso(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Access record id must be numeric"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "fechaHora", Value: 1}})
	cursor, err := h.DB.Collection(detalleCollection).Find(context.Background(), bson.M{"accesoID": id}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query movement records"})
		return
	}
	defer cursor.Close(context.Background())

	var detalles []models.AccesoInstalacionDetalle
	if err = cursor.All(context.Background(), &detalles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode movement records"})
		return
	}
	if detalles == nil {
		detalles = []models.AccesoInstalacionDetalle{}
	}

	c.JSON(http.StatusOK, detalles)
}

// accesoUpdateFilter matches the record to update. A closing update only
// matches while the visit is still open, so two racing closes cannot both
// succeed; the loser sees ErrNoDocuments.
func accesoUpdateFilter(id int64, closing bool) bson.M {
	filter := bson.M{"accesoID": id}
	if closing {
		filter["fechaHoraSalidaDefinitiva"] = bson.M{"$exists": false}
	}
	return filter
}

func (h *AccesoHandler) findAcceso(ctx context.Context, id int64) (models.AccesoInstalacion, error) {
	var acceso models.AccesoInstalacion
	err := h.DB.Collection(accesoCollection).FindOne(ctx, bson.M{"accesoID": id}).Decode(&acceso)
	return acceso, err
}

func (h *AccesoHandler) insertDetalle(ctx context.Context, accesoID int64, movimiento string, fechaHora time.Time, createdBy string) error {
	detalleID, err := database.NextSequence(ctx, h.DB, detalleCollection)
	if err != nil {
		return err
	}
	_, err = h.DB.Collection(detalleCollection).InsertOne(ctx, models.AccesoInstalacionDetalle{
		ID:             detalleID,
		AccesoID:       accesoID,
		TipoMovimiento: movimiento,
		FechaHora:      fechaHora,
		CreatedBy:      createdBy,
	})
	return err
}

func applyUpdateFields(set bson.M, req UpdateAccesoRequest) {
	if req.FechaHora != nil {
		set["fechaHora"] = *req.FechaHora
	}
	if req.SedeID != nil {
		set["sedeID"] = *req.SedeID
	}
	if req.EmpresaID != nil {
		set["empresaID"] = *req.EmpresaID
	}
	if req.NumeroDocumento != nil {
		set["numeroDocumento"] = *req.NumeroDocumento
	}
	if req.TipoDocIdentidadID != nil {
		set["tipoDocIdentidadID"] = *req.TipoDocIdentidadID
	}
	if req.NombrePersona != nil {
		set["nombrePersona"] = *req.NombrePersona
	}
	if req.TipoAccesoID != nil {
		set["tipoAccesoID"] = *req.TipoAccesoID
	}
	if req.MotivoID != nil {
		set["motivoID"] = *req.MotivoID
	}
	if req.TipoPersonaID != nil {
		set["tipoPersonaID"] = *req.TipoPersonaID
	}
	if req.VehiculoNroPlaca != nil {
		set["vehiculoNroPlaca"] = *req.VehiculoNroPlaca
	}
	if req.VehiculoMarca != nil {
		set["vehiculoMarca"] = *req.VehiculoMarca
	}
	if req.VehiculoModelo != nil {
		set["vehiculoModelo"] = *req.VehiculoModelo
	}
	if req.VehiculoColor != nil {
		set["vehiculoColor"] = *req.VehiculoColor
	}
	if req.TipoEquipoID != nil {
		set["tipoEquipoID"] = *req.TipoEquipoID
	}
	if req.EquipoMarca != nil {
		set["equipoMarca"] = *req.EquipoMarca
	}
	if req.EquipoSerie != nil {
		set["equipoSerie"] = *req.EquipoSerie
	}
	if req.PersonaFirmaDestinoVisitaID != nil {
		set["personaFirmaDestinoVisitaID"] = *req.PersonaFirmaDestinoVisitaID
	}
	if req.NombreDestinoVisita != nil {
		set["nombreDestinoVisita"] = *req.NombreDestinoVisita
	}
	if req.Observaciones != nil {
		set["observaciones"] = *req.Observaciones
	}
	if req.IncidenteResaltante != nil {
		set["incidenteResaltante"] = *req.IncidenteResaltante
	}
	if req.DescripcionIncidente != nil {
		set["descripcionIncidente"] = *req.DescripcionIncidente
	}
	if req.FechaHoraSalidaDefinitiva != nil {
		set["fechaHoraSalidaDefinitiva"] = *req.FechaHoraSalidaDefinitiva
	}
}
