package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"commission-backend/internal/model"
	"commission-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type stubApprovalService struct {
	lastReason string
	calls      int
}

func (s *stubApprovalService) Submit(ctx context.Context, ids []int64, actorID string) service.WorkflowResult {
	s.calls++
	return service.WorkflowResult{Success: true, Processed: len(ids)}
}

func (s *stubApprovalService) Approve(ctx context.Context, ids []int64, actorID, notes string) service.WorkflowResult {
	s.calls++
	return service.WorkflowResult{Success: true, Processed: len(ids)}
}

func (s *stubApprovalService) Reject(ctx context.Context, ids []int64, actorID, reason, notes string) service.WorkflowResult {
	s.calls++
	s.lastReason = reason
	return service.WorkflowResult{Success: true, Processed: len(ids)}
}

func (s *stubApprovalService) MarkPaid(ctx context.Context, ids []int64, actorID string) service.WorkflowResult {
	s.calls++
	return service.WorkflowResult{Success: true, Processed: len(ids)}
}

func (s *stubApprovalService) ListByStatus(ctx context.Context, approvalStatus string, triggerReached *bool) ([]model.Commission, error) {
	return nil, nil
}

func (s *stubApprovalService) InstallmentStatuses(ctx context.Context) ([]model.InstallmentStatusOption, error) {
	return nil, nil
}

func newTestRouter(stub *stubApprovalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCommissionHandler(stub, nil, nil)
	h.RegisterRoutes(&router.RouterGroup)
	return router
}

func doPost(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitRequiresIDs(t *testing.T) {
	stub := &stubApprovalService{}
	router := newTestRouter(stub)

	w := doPost(t, router, "/api/commissions/submit", `{"commission_ids": []}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty id list", w.Code)
	}
	if stub.calls != 0 {
		t.Error("engine must not be called on validation failure")
	}
}

func TestSubmitAcceptsBatch(t *testing.T) {
	stub := &stubApprovalService{}
	router := newTestRouter(stub)

	w := doPost(t, router, "/api/commissions/submit", `{"commission_ids": [1, 2, 3]}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if stub.calls != 1 {
		t.Errorf("engine calls = %d, want 1", stub.calls)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	stub := &stubApprovalService{}
	router := newTestRouter(stub)

	w := doPost(t, router, "/api/commissions/reject", `{"commission_ids": [1]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing reason", w.Code)
	}
	if stub.calls != 0 {
		t.Error("engine must not be called without a reason")
	}

	w = doPost(t, router, "/api/commissions/reject", `{"commission_ids": [1], "reason": "valores divergentes"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with a reason", w.Code)
	}
	if stub.lastReason != "valores divergentes" {
		t.Errorf("reason = %q, not forwarded", stub.lastReason)
	}
}

func TestListRejectsBadTriggerFilter(t *testing.T) {
	router := newTestRouter(&stubApprovalService{})

	req := httptest.NewRequest(http.MethodGet, "/api/commissions?trigger_reached=maybe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-boolean filter", w.Code)
	}
}
