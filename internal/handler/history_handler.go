package handler

import (
	"net/http"
	"strconv"

	"commission-backend/internal/repository"
	"commission-backend/pkg/pagination"
	"commission-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history repository.HistoryRepository
	lots    repository.LotRepository
}

func NewHistoryHandler(history repository.HistoryRepository, lots repository.LotRepository) *HistoryHandler {
	return &HistoryHandler{history: history, lots: lots}
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/approval-history", h.List)
	router.GET("/api/approval-lots/:id", h.GetLot)
}

// GetLot returns the batch record a notification e-mail references.
func (h *HistoryHandler) GetLot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid lot id"))
		return
	}

	lot, err := h.lots.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lot))
}

// List returns the audit trail, either for one commission or paginated
// across the board.
func (h *HistoryHandler) List(c *gin.Context) {
	if raw := c.Query("commission_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid commission_id"))
			return
		}
		entries, err := h.history.ListByCommission(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
		return
	}

	params := pagination.Parse(c)
	entries, total, err := h.history.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   entries,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}
