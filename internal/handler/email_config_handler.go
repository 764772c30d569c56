package handler

import (
	"net/http"

	"commission-backend/internal/middleware"
	"commission-backend/internal/service"
	"commission-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type EmailConfigHandler struct {
	configService service.EmailConfigService
}

func NewEmailConfigHandler(configService service.EmailConfigService) *EmailConfigHandler {
	return &EmailConfigHandler{configService: configService}
}

func (h *EmailConfigHandler) RegisterRoutes(router *gin.RouterGroup) {
	configs := router.Group("/api/email-configs")
	{
		configs.GET("", h.List)
		configs.PUT("/:type", h.Set)
	}
}

func (h *EmailConfigHandler) List(c *gin.Context) {
	configs, err := h.configService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, configs))
}

type setRecipientsRequest struct {
	Emails []string `json:"emails" binding:"required"`
}

func (h *EmailConfigHandler) Set(c *gin.Context) {
	var req setRecipientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	cfg, err := h.configService.SetRecipients(c.Request.Context(), c.Param("type"), req.Emails, middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cfg))
}
