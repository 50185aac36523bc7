package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telemedika/teleconsult-api/internal/handler"
	"github.com/telemedika/teleconsult-api/internal/middleware"
	consultationService "github.com/telemedika/teleconsult-api/internal/service/consultation"
)

// Handler serves the role-gated dashboard views as plain data: the caller's
// consultations plus the actor identity the page renders from.
type Handler struct {
	consultations *consultationService.Service
}

func NewHandler(consultations *consultationService.Service) *Handler {
	return &Handler{consultations: consultations}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.GET("/patient/dashboard", auth.RequirePatient(), h.PatientDashboard)
	rg.GET("/doctor/dashboard", auth.RequireDoctor(), h.DoctorDashboard)
}

func (h *Handler) PatientDashboard(c *gin.Context) {
	actor := middleware.GetActor(c)

	consultations, err := h.consultations.ListForPatient(c.Request.Context(), actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"username":      actor.Username,
		"role":          "patient",
		"consultations": consultations,
	}))
}

func (h *Handler) DoctorDashboard(c *gin.Context) {
	actor := middleware.GetActor(c)

	consultations, err := h.consultations.ListForDoctor(c.Request.Context(), actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"username":      actor.Username,
		"role":          "doctor",
		"consultations": consultations,
	}))
}
