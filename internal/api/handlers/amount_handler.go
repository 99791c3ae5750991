package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AmountHandler serves the form helpers: line item totals and amount display.
type AmountHandler struct {
	documents *service.DocumentService
}

func NewAmountHandler(documents *service.DocumentService) *AmountHandler {
	return &AmountHandler{documents: documents}
}

type itemsTotalRequest struct {
	Items []domain.LineItem `json:"items"`
}

// TotalItems computes the total of posted line items
func (h *AmountHandler) TotalItems(c *gin.Context) {
	var req itemsTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid items payload"})
		return
	}

	total := h.documents.TotalItems(req.Items)
	if total.Excluded > 0 {
		log.Debug().Int("excluded", total.Excluded).Msg("items total: dropped items without description")
	}

	c.JSON(http.StatusOK, total)
}

// AmountInWords spells out an amount for printing
func (h *AmountHandler) AmountInWords(c *gin.Context) {
	amount := strings.TrimSpace(c.Query("amount"))
	if amount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	style := h.documents.Style()
	if raw := c.Query("style"); raw != "" {
		style = money.ParseStyle(raw)
	}

	words, err := money.WordsForString(amount, style)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"amount": amount,
		"words":  words,
	})
}

// FormatAmount renders an amount with the currency glyph
func (h *AmountHandler) FormatAmount(c *gin.Context) {
	formatter := h.documents.Formatter()
	display := formatter.Format(c.Query("amount"))

	c.JSON(http.StatusOK, gin.H{
		"display": display,
		"value":   formatter.Parse(display).StringFixed(2),
	})
}
