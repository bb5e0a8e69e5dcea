package executor_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"backend/internal/common"
	"backend/internal/workflow"
	"backend/internal/workflow/executor"
	"backend/pkg/aiinterface"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// routingModelClient 按用户消息内容路由成功或失败，用于引擎聚合测试
type routingModelClient struct {
	failOn string // 用户消息包含该子串时返回错误
	calls  int
}

func (r *routingModelClient) ChatCompletion(ctx context.Context, req *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	r.calls++
	user := req.Messages[len(req.Messages)-1].Content
	if r.failOn != "" && strings.Contains(user, r.failOn) {
		return nil, fmt.Errorf("simulated api failure")
	}
	return &aiinterface.ChatCompletionResponse{Content: "generated: " + user}, nil
}

func (r *routingModelClient) Name() string { return "routing-fake" }

func (r *routingModelClient) Close() error { return nil }

func setupEngineTestDB(t *testing.T) *gorm.DB {
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

func seedField(t *testing.T, db *gorm.DB, workflowID, name, template string, createdAt time.Time) string {
	t.Helper()
	field := &workflow.Field{
		ID:         uuid.New().String(),
		WorkflowID: workflowID,
		Name:       name,
		DataType:   workflow.DataTypeText,
		CreatedAt:  createdAt,
	}
	if err := db.Create(field).Error; err != nil {
		t.Fatalf("insert field %s: %v", name, err)
	}
	if template != "" {
		prompt := &workflow.Prompt{
			ID:             uuid.New().String(),
			FieldID:        field.ID,
			PromptTemplate: template,
			CreatedAt:      createdAt,
		}
		if err := db.Create(prompt).Error; err != nil {
			t.Fatalf("insert prompt for %s: %v", name, err)
		}
	}
	return field.ID
}

func TestEngine_Execute_MixedResults(t *testing.T) {
	db := setupEngineTestDB(t)
	svc := workflow.NewWorkflowService(db)
	ctx := context.Background()

	wf, err := svc.CreateWorkflow(ctx, "Mixed")
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	seedField(t, db, wf.ID, "ok_field", "Summarize this.", base)
	seedField(t, db, wf.ID, "empty_field", "", base.Add(time.Minute))
	seedField(t, db, wf.ID, "fail_field", "Trigger FAIL path.", base.Add(2*time.Minute))

	client := &routingModelClient{failOn: "FAIL"}
	engine := executor.NewEngine(svc, executor.NewPromptExecutor(client, "gpt-3.5-turbo", 0))

	report, err := engine.Execute(ctx, wf.ID, "the document body")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.WorkflowID != wf.ID || report.WorkflowName != "Mixed" {
		t.Fatalf("unexpected workflow identity in report: %+v", report)
	}
	if report.UserInput != "the document body" {
		t.Fatalf("unexpected user input: %q", report.UserInput)
	}
	if report.TotalFields != 3 {
		t.Fatalf("expected 3 total fields, got %d", report.TotalFields)
	}
	if report.SuccessfulExecutions != 1 || report.FailedExecutions != 2 {
		t.Fatalf("expected 1 success / 2 failures, got %d / %d",
			report.SuccessfulExecutions, report.FailedExecutions)
	}
	if report.ExecutionTimestamp.IsZero() {
		t.Fatalf("expected execution timestamp to be set")
	}
	if len(report.FieldResults) != 3 {
		t.Fatalf("expected 3 field results, got %d", len(report.FieldResults))
	}

	// 结果按字段创建顺序返回
	ok, empty, fail := report.FieldResults[0], report.FieldResults[1], report.FieldResults[2]

	if ok.FieldName != "ok_field" || !ok.ExecutionSuccess {
		t.Fatalf("expected ok_field success first, got %+v", ok)
	}
	if !strings.Contains(ok.AIResponse, "Summarize this.") {
		t.Fatalf("unexpected ai response: %q", ok.AIResponse)
	}
	if ok.ErrorMessage != "" {
		t.Fatalf("expected empty error message on success, got %q", ok.ErrorMessage)
	}

	if empty.FieldName != "empty_field" || empty.ExecutionSuccess {
		t.Fatalf("expected empty_field failure, got %+v", empty)
	}
	if empty.ErrorMessage != "No prompts found for this field" {
		t.Fatalf("unexpected error message: %q", empty.ErrorMessage)
	}

	if fail.FieldName != "fail_field" || fail.ExecutionSuccess {
		t.Fatalf("expected fail_field failure, got %+v", fail)
	}
	if fail.ErrorMessage == "" {
		t.Fatalf("expected error message for failed execution")
	}
	if fail.AIResponse != "" {
		t.Fatalf("expected empty ai response on failure, got %q", fail.AIResponse)
	}

	// 无提示词的字段不应触发模型调用
	if client.calls != 2 {
		t.Fatalf("expected 2 model calls, got %d", client.calls)
	}
}

func TestEngine_Execute_WorkflowNotFound(t *testing.T) {
	db := setupEngineTestDB(t)
	svc := workflow.NewWorkflowService(db)
	engine := executor.NewEngine(svc, executor.NewPromptExecutor(&routingModelClient{}, "gpt-3.5-turbo", 0))

	_, err := engine.Execute(context.Background(), uuid.New().String(), "input")
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	if code := engineBusinessCode(t, err); code != common.CodeWorkflowNotFound {
		t.Fatalf("expected CodeWorkflowNotFound, got %d", code)
	}
}

func TestEngine_Execute_NoFields(t *testing.T) {
	db := setupEngineTestDB(t)
	svc := workflow.NewWorkflowService(db)
	ctx := context.Background()

	wf, err := svc.CreateWorkflow(ctx, "Empty")
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	engine := executor.NewEngine(svc, executor.NewPromptExecutor(&routingModelClient{}, "gpt-3.5-turbo", 0))
	_, err = engine.Execute(ctx, wf.ID, "input")
	if err == nil {
		t.Fatalf("expected error for workflow without fields")
	}
	if code := engineBusinessCode(t, err); code != common.CodeWorkflowNotFound {
		t.Fatalf("expected CodeWorkflowNotFound, got %d", code)
	}
}

func TestEngine_Execute_FirstPromptOnly(t *testing.T) {
	db := setupEngineTestDB(t)
	svc := workflow.NewWorkflowService(db)
	ctx := context.Background()

	wf, err := svc.CreateWorkflow(ctx, "Multi Prompt")
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	fieldID := seedField(t, db, wf.ID, "field", "first template", base)

	// 追加一个更晚创建的提示词，执行时必须被忽略
	second := &workflow.Prompt{
		ID:             uuid.New().String(),
		FieldID:        fieldID,
		PromptTemplate: "second template",
		CreatedAt:      base.Add(time.Minute),
	}
	if err := db.Create(second).Error; err != nil {
		t.Fatalf("insert second prompt: %v", err)
	}

	client := &routingModelClient{}
	engine := executor.NewEngine(svc, executor.NewPromptExecutor(client, "gpt-3.5-turbo", 0))

	report, err := engine.Execute(ctx, wf.ID, "input")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly 1 model call, got %d", client.calls)
	}
	if report.FieldResults[0].PromptTemplate != "first template" {
		t.Fatalf("expected first prompt to be used, got %q", report.FieldResults[0].PromptTemplate)
	}
}

func engineBusinessCode(t *testing.T, err error) int {
	t.Helper()
	var be *common.BusinessError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessError, got %T: %v", err, err)
	}
	return be.Code
}
