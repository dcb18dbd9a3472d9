package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/pkg/response"
)

type DraftHandler struct {
	service *application.DraftService
}

func NewDraftHandler(service *application.DraftService) *DraftHandler {
	return &DraftHandler{service: service}
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.service.Draft()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) AddField(c *gin.Context) {
	var input schema.CreateFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	field, err := h.service.AddField(input)
	if err != nil {
		if errors.Is(err, application.ErrUnknownFieldType) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, field)
}

func (h *DraftHandler) UpdateField(c *gin.Context) {
	var input schema.UpdateFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	field, err := h.service.UpdateField(c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrFieldNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrSelfParent):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, field)
}

func (h *DraftHandler) RemoveField(c *gin.Context) {
	h.service.RemoveField(c.Param("id"))
	c.JSON(http.StatusOK, response.MessageResponse{Message: "field removed"})
}

func (h *DraftHandler) ReorderFields(c *gin.Context) {
	var input schema.ReorderFieldsDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	h.service.ReorderFields(input.From, input.To)
	draft, err := h.service.Draft()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) ResetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ResetDraft())
}

func (h *DraftHandler) SaveForm(c *gin.Context) {
	var input schema.SaveFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.service.SaveForm(input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *DraftHandler) LoadSaved(c *gin.Context) {
	draft, found, err := h.service.LoadSavedIntoDraft(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "form not found"})
		return
	}
	c.JSON(http.StatusOK, draft)
}
