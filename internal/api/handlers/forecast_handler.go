package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/report"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func parseForecastRequest(c *gin.Context) domain.ForecastRequest {
	includeHistorical, _ := strconv.ParseBool(strings.TrimSpace(c.Query("include_historical")))
	return domain.ForecastRequest{
		LookbackMonths:    parsePositiveIntWithDefault(c.Query("lookback"), 0),
		IncludeHistorical: includeHistorical,
	}
}

// GetForecast returns the yearly forecast, scores and alerts
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	resp := h.service.Forecast(c.Request.Context(), parseForecastRequest(c))
	if !resp.Success {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportForecast renders the forecast as a csv or xlsx download
func (h *ForecastHandler) ExportForecast(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	resp := h.service.Forecast(c.Request.Context(), parseForecastRequest(c))
	if !resp.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"error": resp.Error})
		return
	}

	var (
		buf         bytes.Buffer
		err         error
		contentType = "text/csv"
	)
	if format == "xlsx" {
		contentType = xlsxContentType
		err = report.WriteForecastXLSX(&buf, resp)
	} else {
		err = report.WriteForecastCSV(&buf, resp)
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("forecast export: render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}

	filename := fmt.Sprintf("forecast-%s.%s", time.Now().Format("200601"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}
