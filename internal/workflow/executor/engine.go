package executor

import (
	"context"
	"time"

	"backend/internal/common"
	"backend/internal/logger"
	"backend/internal/metrics"
	"backend/internal/workflow"

	"go.uber.org/zap"
)

// FieldResult 单个字段的执行结果
type FieldResult struct {
	FieldID          string `json:"field_id"`
	FieldName        string `json:"field_name"`
	DataType         string `json:"data_type"`
	PromptTemplate   string `json:"prompt_template"`
	AIResponse       string `json:"ai_response"`
	ExecutionSuccess bool   `json:"execution_success"`
	ErrorMessage     string `json:"error_message"`
}

// ExecutionReport 工作流执行汇总报告
type ExecutionReport struct {
	WorkflowID           string        `json:"workflow_id"`
	WorkflowName         string        `json:"workflow_name"`
	UserInput            string        `json:"user_input"`
	TotalFields          int           `json:"total_fields"`
	SuccessfulExecutions int           `json:"successful_executions"`
	FailedExecutions     int           `json:"failed_executions"`
	FieldResults         []FieldResult `json:"field_results"`
	ExecutionTimestamp   time.Time     `json:"execution_timestamp"`
}

// Engine 工作流执行引擎
// 按字段创建顺序串行执行每个字段的首个提示词，单字段失败不中断批次
type Engine struct {
	svc      *workflow.WorkflowService
	executor *PromptExecutor
}

// NewEngine 创建执行引擎
func NewEngine(svc *workflow.WorkflowService, executor *PromptExecutor) *Engine {
	return &Engine{svc: svc, executor: executor}
}

// Execute 执行整个工作流
// 工作流不存在或没有字段时返回业务错误，字段级失败进入结果汇总
func (e *Engine) Execute(ctx context.Context, workflowID, userInput string) (*ExecutionReport, error) {
	wf, err := e.svc.GetWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	fields, err := e.svc.ListFields(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, common.NewBusinessError(common.CodeWorkflowNotFound, "工作流下没有可执行字段")
	}

	report := &ExecutionReport{
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		UserInput:    userInput,
		TotalFields:  len(fields),
		FieldResults: make([]FieldResult, 0, len(fields)),
	}

	start := time.Now()
	for _, field := range fields {
		result := e.executeField(ctx, field, userInput)
		if result.ExecutionSuccess {
			report.SuccessfulExecutions++
			metrics.FieldExecutionsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
		} else {
			report.FailedExecutions++
			metrics.FieldExecutionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		}
		report.FieldResults = append(report.FieldResults, result)
	}

	report.ExecutionTimestamp = time.Now().UTC()
	metrics.WorkflowExecutionDuration.Observe(time.Since(start).Seconds())
	if report.FailedExecutions == 0 {
		metrics.WorkflowExecutionsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	} else {
		metrics.WorkflowExecutionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
	}

	logger.Info("工作流执行完成",
		zap.String("workflow_id", wf.ID),
		zap.Int("total", report.TotalFields),
		zap.Int("succeeded", report.SuccessfulExecutions),
		zap.Int("failed", report.FailedExecutions),
	)

	return report, nil
}

// executeField 执行单个字段的首个提示词
func (e *Engine) executeField(ctx context.Context, field workflow.Field, userInput string) FieldResult {
	result := FieldResult{
		FieldID:   field.ID,
		FieldName: field.Name,
		DataType:  string(field.DataType),
	}

	prompts, err := e.svc.ListPrompts(ctx, field.ID)
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}
	if len(prompts) == 0 {
		result.ErrorMessage = "No prompts found for this field"
		return result
	}

	// 只执行首个提示词
	prompt := prompts[0]
	result.PromptTemplate = prompt.PromptTemplate

	response, err := e.executor.Execute(ctx, prompt.PromptTemplate, userInput)
	if err != nil {
		logger.Warn("字段提示词执行失败",
			zap.String("field_id", field.ID),
			zap.String("field_name", field.Name),
			zap.Error(err),
		)
		result.ErrorMessage = err.Error()
		return result
	}

	result.AIResponse = response
	result.ExecutionSuccess = true
	return result
}
