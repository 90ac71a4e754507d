package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pricing-backend/internal/repositories"
	"pricing-backend/internal/responses"
	"pricing-backend/internal/services"
)

type PricingHandler struct {
	pricingService *services.PricingService
	customService  *services.CustomService
	logger         *zap.Logger
}

func NewPricingHandler(pricingService *services.PricingService, customService *services.CustomService, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		customService:  customService,
		logger:         logger,
	}
}

// Sections serves the static pricing schema so clients drive their editor
// dispatch from the same registry the backend enforces.
func (h *PricingHandler) Sections(c *gin.Context) {
	responses.Success(c, http.StatusOK, h.pricingService.Sections())
}

func (h *PricingHandler) ListRows(c *gin.Context) {
	tableKey := c.Param("tableKey")

	includeInactive := false
	if raw := c.Query("includeInactive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, responses.CodeValidation, "includeInactive must be a boolean")
			return
		}
		includeInactive = parsed
	}

	rows, err := h.pricingService.ListRows(c.Request.Context(), tableKey, includeInactive)
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, rows)
}

func (h *PricingHandler) CreateRow(c *gin.Context) {
	tableKey := c.Param("tableKey")

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		responses.Fail(c, http.StatusBadRequest, responses.CodeValidation, "Invalid request body")
		return
	}

	id, err := h.pricingService.CreateRow(c.Request.Context(), tableKey, payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, gin.H{"id": id})
}

func (h *PricingHandler) UpdateRow(c *gin.Context) {
	tableKey := c.Param("tableKey")
	id, ok := h.rowID(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		responses.Fail(c, http.StatusBadRequest, responses.CodeValidation, "Invalid request body")
		return
	}

	if err := h.pricingService.UpdateRow(c.Request.Context(), tableKey, id, payload); err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, nil)
}

func (h *PricingHandler) DeactivateRow(c *gin.Context) {
	tableKey := c.Param("tableKey")
	id, ok := h.rowID(c)
	if !ok {
		return
	}

	if err := h.pricingService.DeactivateRow(c.Request.Context(), tableKey, id); err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, nil)
}

func (h *PricingHandler) RestoreRow(c *gin.Context) {
	tableKey := c.Param("tableKey")
	id, ok := h.rowID(c)
	if !ok {
		return
	}

	if err := h.pricingService.RestoreRow(c.Request.Context(), tableKey, id); err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, nil)
}

func (h *PricingHandler) CustomRows(c *gin.Context) {
	rows, err := h.customService.Rows(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, rows)
}

func (h *PricingHandler) rowID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, responses.CodeValidation, "Invalid row id")
		return 0, false
	}
	return id, true
}

// fail maps service errors to the response envelope. Validation messages are
// passed through verbatim; anything unexpected is logged and masked.
func (h *PricingHandler) fail(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrTableNotFound):
		responses.Fail(c, http.StatusNotFound, responses.CodeNotFound, "Table not configured")
	case errors.Is(err, services.ErrUnsupported):
		responses.Fail(c, http.StatusMethodNotAllowed, responses.CodeUnsupported, "Operation not supported for this table")
	case errors.Is(err, repositories.ErrRowNotFound):
		responses.Fail(c, http.StatusNotFound, responses.CodeNotFound, "Row not found")
	case errors.As(err, &validationErr):
		responses.Fail(c, http.StatusBadRequest, responses.CodeValidation, validationErr.Msg)
	default:
		h.logger.Error("pricing request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		responses.Fail(c, http.StatusInternalServerError, responses.CodeInternal, "Internal server error")
	}
}
