package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/workflow"
	"backend/internal/workflow/executor"
	"backend/pkg/aiinterface"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stubModelClient 固定返回内容的模型客户端
type stubModelClient struct {
	content string
	err     error
}

func (s *stubModelClient) ChatCompletion(ctx context.Context, req *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &aiinterface.ChatCompletionResponse{Content: s.content}, nil
}

func (s *stubModelClient) Name() string { return "stub" }

func (s *stubModelClient) Close() error { return nil }

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&workflow.Workflow{}, &workflow.Field{}, &workflow.Prompt{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB, client aiinterface.ModelClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := workflow.NewWorkflowService(db)
	promptExec := executor.NewPromptExecutor(client, "gpt-3.5-turbo", 0)
	engine := executor.NewEngine(svc, promptExec)

	wfHandler := NewWorkflowHandler(svc)
	execHandler := NewExecuteHandler(engine)

	router := gin.New()
	router.POST("/workflows", wfHandler.CreateWorkflow)
	router.GET("/workflows/:id", wfHandler.GetWorkflow)
	router.POST("/workflows/:id/fields", wfHandler.CreateField)
	router.POST("/workflows/:id/execute", execHandler.ExecuteWorkflow)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateWorkflow(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{"name": "Invoice Flow"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created workflow.Workflow
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Name != "Invoice Flow" {
		t.Fatalf("unexpected name: %q", created.Name)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", created.ID)
	}
}

func TestCreateWorkflow_MissingName(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateWorkflow_Duplicate(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	if w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{"name": "Dup"}); w.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", w.Code)
	}
	w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{"name": "Dup"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetWorkflow_InvalidID(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodGet, "/workflows/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetWorkflow_NotFound(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodGet, "/workflows/"+uuid.New().String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetWorkflow_NestedTree(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{"name": "Tree"})
	var created workflow.Workflow
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created workflow: %v", err)
	}

	fieldReq := gin.H{
		"field_data":  gin.H{"name": "amount", "data_type": "number"},
		"prompt_data": gin.H{"prompt_template": "Extract the total amount."},
	}
	if w := doJSON(t, router, http.MethodPost, "/workflows/"+created.ID+"/fields", fieldReq); w.Code != http.StatusCreated {
		t.Fatalf("create field: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/workflows/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got workflow.Workflow
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode workflow tree: %v", err)
	}
	if len(got.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(got.Fields))
	}
	if len(got.Fields[0].Prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(got.Fields[0].Prompts))
	}
	if got.Fields[0].Prompts[0].PromptTemplate != "Extract the total amount." {
		t.Fatalf("unexpected template: %q", got.Fields[0].Prompts[0].PromptTemplate)
	}
}

func TestCreateField_MismatchedWorkflowID(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{"name": "Mismatch"})
	var created workflow.Workflow
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created workflow: %v", err)
	}

	fieldReq := gin.H{
		"field_data":  gin.H{"workflow_id": uuid.New().String(), "name": "amount", "data_type": "number"},
		"prompt_data": gin.H{"prompt_template": "Extract it."},
	}
	w = doJSON(t, router, http.MethodPost, "/workflows/"+created.ID+"/fields", fieldReq)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateField_WorkflowMissing(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	fieldReq := gin.H{
		"field_data":  gin.H{"name": "amount", "data_type": "number"},
		"prompt_data": gin.H{"prompt_template": "Extract it."},
	}
	w := doJSON(t, router, http.MethodPost, "/workflows/"+uuid.New().String()+"/fields", fieldReq)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateField_InvalidDataType(t *testing.T) {
	db := setupHandlerTestDB(t)
	router := newTestRouter(t, db, &stubModelClient{content: "ok"})

	w := doJSON(t, router, http.MethodPost, "/workflows", gin.H{"name": "Typed"})
	var created workflow.Workflow
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created workflow: %v", err)
	}

	fieldReq := gin.H{
		"field_data":  gin.H{"name": "amount", "data_type": "integer"},
		"prompt_data": gin.H{"prompt_template": "Extract it."},
	}
	w = doJSON(t, router, http.MethodPost, "/workflows/"+created.ID+"/fields", fieldReq)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
