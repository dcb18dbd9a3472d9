package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/pkg/response"
)

type RestoreDTO struct {
	Object string `json:"object" binding:"required"`
}

type BackupHandler struct {
	service *application.BackupService
}

func NewBackupHandler(service *application.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

func (h *BackupHandler) Snapshot(c *gin.Context) {
	object, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.BackupResponse{Object: object})
}

func (h *BackupHandler) Restore(c *gin.Context) {
	var input RestoreDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	count, err := h.service.Restore(c.Request.Context(), input.Object)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.BackupResponse{Object: input.Object, Count: count})
}
