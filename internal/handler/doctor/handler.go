package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telemedika/teleconsult-api/internal/handler"
	directoryService "github.com/telemedika/teleconsult-api/internal/service/directory"
)

type Handler struct {
	directory *directoryService.Service
}

func NewHandler(directory *directoryService.Service) *Handler {
	return &Handler{directory: directory}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctors", h.ListDoctors)
}

// ListDoctors serves the directory the booking form selects a doctor from.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.directory.ListDoctors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}
