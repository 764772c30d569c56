package handler

import (
	"net/http"

	"commission-backend/internal/model"
	"commission-backend/internal/repository"
	"commission-backend/internal/service"
	"commission-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	triggerService service.TriggerService
	contracts      repository.ContractRepository
}

func NewContractHandler(triggerService service.TriggerService, contracts repository.ContractRepository) *ContractHandler {
	return &ContractHandler{triggerService: triggerService, contracts: contracts}
}

func (h *ContractHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/api/contracts")
	{
		contracts.GET("/:buildingID", h.ListByBuilding)
		contracts.GET("/:buildingID/:number", h.TriggerInfo)
	}
}

// ListByBuilding returns the mirrored contracts of one development.
func (h *ContractHandler) ListByBuilding(c *gin.Context) {
	buildingID := c.Param("buildingID")
	contracts, err := h.contracts.ListByBuilding(c.Request.Context(), buildingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        http.StatusOK,
		"building_id":   buildingID,
		"building_name": model.BuildingName(buildingID),
		"data":          contracts,
		"total":         len(contracts),
	})
}

// TriggerInfo returns the contract figures with the computed trigger
// state for the dashboard drill-down.
func (h *ContractHandler) TriggerInfo(c *gin.Context) {
	info, err := h.triggerService.ContractInfo(c.Request.Context(), c.Param("number"), c.Param("buildingID"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}
