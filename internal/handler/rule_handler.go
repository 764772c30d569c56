package handler

import (
	"errors"
	"net/http"
	"strconv"

	"commission-backend/internal/service"
	"commission-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RuleHandler struct {
	ruleService service.RuleService
}

func NewRuleHandler(ruleService service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

func (h *RuleHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/api/trigger-rules")
	{
		rules.GET("", h.List)
		rules.GET("/:id", h.Get)
		rules.POST("", h.Create)
		rules.PUT("/:id", h.Update)
		rules.DELETE("/:id", h.Deactivate)
	}
}

func (h *RuleHandler) List(c *gin.Context) {
	rules, err := h.ruleService.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rules))
}

func (h *RuleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid rule id"))
		return
	}

	rule, err := h.ruleService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

func (h *RuleHandler) Create(c *gin.Context) {
	var req service.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	rule, err := h.ruleService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(ruleErrorStatus(err), response.Error(ruleErrorStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

func (h *RuleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid rule id"))
		return
	}

	var req service.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	rule, err := h.ruleService.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(ruleErrorStatus(err), response.Error(ruleErrorStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

func (h *RuleHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid rule id"))
		return
	}

	if err := h.ruleService.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, "rule deactivated", nil))
}

func ruleErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrRuleNameRequired),
		errors.Is(err, service.ErrRulePercentInvalid),
		errors.Is(err, service.ErrRuleKindInvalid),
		errors.Is(err, service.ErrRuleMinRevenue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
