package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"erp-admin-api-server/internal/database"
	"erp-admin-api-server/internal/lookup"
	"erp-admin-api-server/internal/models"
	"erp-admin-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PersonaHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Directory  lookup.VisitorDirectory
}

type PersonaRequest struct {
	TipoDocIdentidadID int64  `json:"tipoDocIdentidadId" binding:"required"`
	NumeroDocumento    string `json:"numeroDocumento" binding:"required"`
	Nombres            string `json:"nombres" binding:"required"`
	ApellidoPaterno    string `json:"apellidoPaterno" binding:"required"`
	ApellidoMaterno    string `json:"apellidoMaterno"`
	EmpresaID          int64  `json:"empresaId" binding:"required"`
	SedeID             *int64 `json:"sedeId"`
	Cargo              string `json:"cargo"`
	Email              string `json:"email"`
	Telefono           string `json:"telefono"`
}

// CreatePersona registers an employee. The document number must be unique.
func (h *PersonaHandler) CreatePersona(c *gin.Context) {
	var req PersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("personas")

	count, err := collection.CountDocuments(context.Background(), bson.M{"numeroDocumento": req.NumeroDocumento})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for person"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Person with this document number already exists"})
		return
	}

	personaID, err := database.NextSequence(context.Background(), h.DB, "personas")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate person id"})
		return
	}

	newPersona := models.Persona{
		ID:                 personaID,
		TipoDocIdentidadID: req.TipoDocIdentidadID,
		NumeroDocumento:    req.NumeroDocumento,
		Nombres:            req.Nombres,
		ApellidoPaterno:    req.ApellidoPaterno,
		ApellidoMaterno:    req.ApellidoMaterno,
		EmpresaID:          req.EmpresaID,
		SedeID:             req.SedeID,
		Cargo:              req.Cargo,
		Email:              req.Email,
		Telefono:           req.Telefono,
		Estado:             "ACTIVO",
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if _, err := collection.InsertOne(context.Background(), newPersona); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create person"})
		return
	}

	c.JSON(http.StatusCreated, newPersona)
}

// GetAllPersonas lists personnel, optionally narrowed by company.
func (h *PersonaHandler) GetAllPersonas(c *gin.Context) {
	filter := bson.M{}
	if raw := c.Query("empresaId"); raw != "" {
		empresaID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empresaId must be numeric"})
			return
		}
		filter["empresaID"] = empresaID
	}

	cursor, err := h.DB.Collection("personas").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query personnel"})
		return
	}
	defer cursor.Close(context.Background())

	var personas []models.Persona
	if err = cursor.All(context.Background(), &personas); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode personnel"})
		return
	}
	if personas == nil {
		personas = []models.Persona{}
	}

	c.JSON(http.StatusOK, personas)
}

func (h *PersonaHandler) GetPersonaByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Person id must be numeric"})
		return
	}

	var persona models.Persona
	err = h.DB.Collection("personas").FindOne(context.Background(), bson.M{"personaID": id}).Decode(&persona)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve person"})
		}
		return
	}

	c.JSON(http.StatusOK, persona)
}

func (h *PersonaHandler) UpdatePersona(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Person id must be numeric"})
		return
	}

	var req PersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{
		"tipoDocIdentidadID": req.TipoDocIdentidadID,
		"numeroDocumento":    req.NumeroDocumento,
		"nombres":            req.Nombres,
		"apellidoPaterno":    req.ApellidoPaterno,
		"apellidoMaterno":    req.ApellidoMaterno,
		"empresaID":          req.EmpresaID,
		"cargo":              req.Cargo,
		"email":              req.Email,
		"telefono":           req.Telefono,
		"updatedAt":          time.Now(),
	}
	if req.SedeID != nil {
		set["sedeID"] = *req.SedeID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Persona
	err = h.DB.Collection("personas").FindOneAndUpdate(
		context.Background(),
		bson.M{"personaID": id},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update person"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PersonaHandler) DeletePersona(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Person id must be numeric"})
		return
	}

	result, err := h.DB.Collection("personas").DeleteOne(context.Background(), bson.M{"personaID": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete person"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person deleted successfully"})
}

// BuscarPorDocumento resolves a document number through the visitor
// directory (local registry, then the external identity service). "Nobody
// found" is a normal answer, not an error.
func (h *PersonaHandler) BuscarPorDocumento(c *gin.Context) {
	numeroDocumento := c.Query("numeroDocumento")
	if numeroDocumento == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "numeroDocumento is required"})
		return
	}

	match, err := h.Directory.FindByDocumento(c.Request.Context(), numeroDocumento)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Identity lookup is unavailable"})
		return
	}
	if match == nil {
		c.JSON(http.StatusOK, gin.H{"encontrado": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"encontrado": true, "persona": match})
}

// UploadFoto stores the person's photo in S3 and saves the resulting URL.
func (h *PersonaHandler) UploadFoto(c *gin.Context) {
	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File storage is not configured"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Person id must be numeric"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("fotos-personal/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	result, err := h.DB.Collection("personas").UpdateOne(
		context.Background(),
		bson.M{"personaID": id},
		bson.M{"$set": bson.M{"fotoURL": url, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo URL"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fotoUrl": url})
}
