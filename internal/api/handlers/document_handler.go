package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DocumentHandler struct {
	service *service.DocumentService
}

func NewDocumentHandler(service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// CreatePurchaseOrder stores a new PO
func (h *DocumentHandler) CreatePurchaseOrder(c *gin.Context) {
	var req domain.NewPurchaseOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po, err := h.service.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "failed to create purchase order")
		return
	}

	c.JSON(http.StatusCreated, po)
}

// CreatePropertyReceipt stores a new PAR
func (h *DocumentHandler) CreatePropertyReceipt(c *gin.Context) {
	var req domain.NewPropertyReceipt
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	par, err := h.service.CreatePropertyReceipt(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "failed to create property receipt")
		return
	}

	c.JSON(http.StatusCreated, par)
}

// PrintPurchaseOrder returns the printable view of a PO
func (h *DocumentHandler) PrintPurchaseOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.PrintPurchaseOrder(c.Request.Context(), id, h.style(c))
	if err != nil {
		h.writeError(c, err, "failed to load purchase order")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// PrintPropertyReceipt returns the printable view of a PAR
func (h *DocumentHandler) PrintPropertyReceipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.PrintPropertyReceipt(c.Request.Context(), id, h.style(c))
	if err != nil {
		h.writeError(c, err, "failed to load property receipt")
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) style(c *gin.Context) money.Style {
	if raw := c.Query("style"); raw != "" {
		return money.ParseStyle(raw)
	}
	return h.service.Style()
}

func (h *DocumentHandler) writeError(c *gin.Context, err error, message string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
	case errors.Is(err, domain.ErrInvalidAmount):
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("documents: total cannot be printed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("documents: " + message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return 0, false
	}
	return id, true
}
