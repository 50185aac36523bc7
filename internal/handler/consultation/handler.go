package consultation

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telemedika/teleconsult-api/internal/handler"
	"github.com/telemedika/teleconsult-api/internal/middleware"
	"github.com/telemedika/teleconsult-api/internal/model"
	consultationService "github.com/telemedika/teleconsult-api/internal/service/consultation"
)

type Handler struct {
	service *consultationService.Service
}

func NewHandler(service *consultationService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	consultations := rg.Group("/consultations")
	{
		consultations.GET("", h.List)
		consultations.POST("", h.Create)
		consultations.GET("/:id", h.Get)
		consultations.PATCH("/:id/status/:status", h.UpdateStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	consultation, err := h.service.Create(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(consultation))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(fmt.Errorf("invalid consultation id: %w", err)).SetType(gin.ErrorTypeBind)
		return
	}

	consultation, err := h.service.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultation))
}

// List returns the caller's side of the bookings, patient or doctor.
func (h *Handler) List(c *gin.Context) {
	consultations, err := h.service.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(fmt.Errorf("invalid consultation id: %w", err)).SetType(gin.ErrorTypeBind)
		return
	}

	newStatus := model.ConsultationStatus(c.Param("status"))

	consultation, err := h.service.UpdateStatus(c.Request.Context(), middleware.GetActor(c), id, newStatus)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultation))
}
