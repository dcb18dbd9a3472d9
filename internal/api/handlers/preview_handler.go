package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/pkg/response"
)

type PreviewHandler struct {
	service *application.PreviewService
}

func NewPreviewHandler(service *application.PreviewService) *PreviewHandler {
	return &PreviewHandler{service: service}
}

// InitialValues seeds the preview's value map from the draft's defaults.
func (h *PreviewHandler) InitialValues(c *gin.Context) {
	values, err := h.service.InitialValues()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}

// Recompute runs one derived-field pass over the posted snapshot and
// returns the merged values. The preview calls this on every change.
func (h *PreviewHandler) Recompute(c *gin.Context) {
	var input schema.PreviewValuesDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	merged, err := h.service.Recompute(input.Values)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": merged})
}

// Validate checks the posted snapshot against the draft's rules.
func (h *PreviewHandler) Validate(c *gin.Context) {
	var input schema.PreviewValuesDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	errs, err := h.service.Validate(input.Values)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"errors": errs, "valid": len(errs) == 0})
}

// Evaluate runs a single formula against an arbitrary value snapshot,
// without touching the draft.
func (h *PreviewHandler) Evaluate(c *gin.Context) {
	var input schema.EvaluateDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Evaluate(input.Formula, input.Values))
}
