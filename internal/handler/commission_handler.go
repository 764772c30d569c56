package handler

import (
	"net/http"
	"strconv"

	"commission-backend/internal/middleware"
	"commission-backend/internal/model"
	"commission-backend/internal/service"
	"commission-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	approvalService    service.ApprovalService
	triggerService     service.TriggerService
	maintenanceService service.MaintenanceService
}

func NewCommissionHandler(
	approvalService service.ApprovalService,
	triggerService service.TriggerService,
	maintenanceService service.MaintenanceService,
) *CommissionHandler {
	return &CommissionHandler{
		approvalService:    approvalService,
		triggerService:     triggerService,
		maintenanceService: maintenanceService,
	}
}

func (h *CommissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	commissions := router.Group("/api/commissions")
	{
		commissions.GET("", h.List)
		commissions.GET("/pending-approval", h.ListPendingApproval)
		commissions.GET("/installment-statuses", h.ListInstallmentStatuses)
		commissions.POST("/submit", h.Submit)
		commissions.POST("/approve", h.Approve)
		commissions.POST("/reject", h.Reject)
		commissions.POST("/mark-paid", h.MarkPaid)
		commissions.POST("/refresh-triggers", h.RefreshTriggers)
		commissions.POST("/purge-duplicates", h.PurgeDuplicates)
		commissions.POST("/:id/refresh-trigger", h.RefreshTrigger)
	}
}

type batchRequest struct {
	CommissionIDs []int64 `json:"commission_ids"`
	Notes         string  `json:"notes"`
	Reason        string  `json:"reason"`
}

// List returns commissions filtered by approval status and trigger
// flag, newest commission date first.
func (h *CommissionHandler) List(c *gin.Context) {
	status := c.Query("status")

	var triggerReached *bool
	if raw := c.Query("trigger_reached"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "trigger_reached must be a boolean"))
			return
		}
		triggerReached = &v
	}

	commissions, err := h.approvalService.ListByStatus(c.Request.Context(), status, triggerReached)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   commissions,
		"total":  len(commissions),
	})
}

// ListPendingApproval returns the direction work queue.
func (h *CommissionHandler) ListPendingApproval(c *gin.Context) {
	commissions, err := h.approvalService.ListByStatus(c.Request.Context(), model.ApprovalPendingApproval, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, commissions))
}

// ListInstallmentStatuses returns the distinct raw ERP labels with
// their canonical mapping, for the filter dropdown.
func (h *CommissionHandler) ListInstallmentStatuses(c *gin.Context) {
	statuses, err := h.approvalService.InstallmentStatuses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, statuses))
}

func (h *CommissionHandler) Submit(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}
	if len(req.CommissionIDs) == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "commission_ids is required"))
		return
	}

	result := h.approvalService.Submit(c.Request.Context(), req.CommissionIDs, middleware.ActorID(c))
	h.renderResult(c, result)
}

func (h *CommissionHandler) Approve(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}
	if len(req.CommissionIDs) == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "commission_ids is required"))
		return
	}

	result := h.approvalService.Approve(c.Request.Context(), req.CommissionIDs, middleware.ActorID(c), req.Notes)
	h.renderResult(c, result)
}

func (h *CommissionHandler) Reject(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}
	if len(req.CommissionIDs) == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "commission_ids is required"))
		return
	}
	// The workflow engine requires a reason; enforce it here.
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "reason is required to reject"))
		return
	}

	result := h.approvalService.Reject(c.Request.Context(), req.CommissionIDs, middleware.ActorID(c), req.Reason, req.Notes)
	h.renderResult(c, result)
}

func (h *CommissionHandler) MarkPaid(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}
	if len(req.CommissionIDs) == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "commission_ids is required"))
		return
	}

	result := h.approvalService.MarkPaid(c.Request.Context(), req.CommissionIDs, middleware.ActorID(c))
	h.renderResult(c, result)
}

func (h *CommissionHandler) RefreshTrigger(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid commission id"))
		return
	}

	commission, err := h.triggerService.RefreshCommission(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, commission))
}

func (h *CommissionHandler) RefreshTriggers(c *gin.Context) {
	flipped, err := h.triggerService.RefreshAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"flipped": flipped}))
}

func (h *CommissionHandler) PurgeDuplicates(c *gin.Context) {
	result, err := h.maintenanceService.PurgeDuplicates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// renderResult maps a workflow outcome onto the HTTP layer: validation
// and zero-eligible batches are 400, everything else is 200 with the
// structured result in the body.
func (h *CommissionHandler) renderResult(c *gin.Context, result service.WorkflowResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, response.Response{
		Status:     statusLabel(result.Success),
		StatusCode: status,
		Message:    result.Message,
		Data:       result,
	})
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
