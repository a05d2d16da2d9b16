package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"erp-admin-api-server/internal/database"
	"erp-admin-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SedeHandler struct {
	DB *mongo.Database
}

type SedeRequest struct {
	EmpresaID int64  `json:"empresaId" binding:"required"`
	Nombre    string `json:"nombre" binding:"required"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}

// CreateSede registers a site under an existing company.
func (h *SedeHandler) CreateSede(c *gin.Context) {
	var req SedeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.DB.Collection("empresas").CountDocuments(context.Background(), bson.M{"empresaID": req.EmpresaID})
	if err != nil || count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company does not exist"})
		return
	}

	sedeID, err := database.NextSequence(context.Background(), h.DB, "sedes")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate site id"})
		return
	}

	newSede := models.Sede{
		ID:        sedeID,
		EmpresaID: req.EmpresaID,
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Estado:    "ACTIVA",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := h.DB.Collection("sedes").InsertOne(context.Background(), newSede); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create site"})
		return
	}

	c.JSON(http.StatusCreated, newSede)
}

// GetAllSedes lists sites, optionally narrowed to one company.
func (h *SedeHandler) GetAllSedes(c *gin.Context) {
	filter := bson.M{}
	if raw := c.Query("empresaId"); raw != "" {
		empresaID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empresaId must be numeric"})
			return
		}
		filter["empresaID"] = empresaID
	}

	cursor, err := h.DB.Collection("sedes").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query sites"})
		return
	}
	defer cursor.Close(context.Background())

	var sedes []models.Sede
	if err = cursor.All(context.Background(), &sedes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode sites"})
		return
	}
	if sedes == nil {
		sedes = []models.Sede{}
	}

	c.JSON(http.StatusOK, sedes)
}

func (h *SedeHandler) GetSedeByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Site id must be numeric"})
		return
	}

	var sede models.Sede
	err = h.DB.Collection("sedes").FindOne(context.Background(), bson.M{"sedeID": id}).Decode(&sede)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve site"})
		}
		return
	}

	c.JSON(http.StatusOK, sede)
}

func (h *SedeHandler) UpdateSede(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Site id must be numeric"})
		return
	}

	var req SedeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Sede
	err = h.DB.Collection("sedes").FindOneAndUpdate(
		context.Background(),
		bson.M{"sedeID": id},
		bson.M{"$set": bson.M{
			"empresaID": req.EmpresaID,
			"nombre":    req.Nombre,
			"direccion": req.Direccion,
			"telefono":  req.Telefono,
			"updatedAt": time.Now(),
		}},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *SedeHandler) DeleteSede(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Site id must be numeric"})
		return
	}

	result, err := h.DB.Collection("sedes").DeleteOne(context.Background(), bson.M{"sedeID": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete site"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Site deleted successfully"})
}
