package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API 指标
var (
	// APIRequestsTotal API 请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflowapi_requests_total",
			Help: "API 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration API 请求延迟（秒）
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workflowapi_request_duration_seconds",
			Help:    "API 请求延迟分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// 工作流执行指标
var (
	// WorkflowExecutionsTotal 工作流执行总数
	WorkflowExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflowapi_workflow_executions_total",
			Help: "工作流执行总数",
		},
		[]string{"status"},
	)

	// FieldExecutionsTotal 字段提示词执行总数
	FieldExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflowapi_field_executions_total",
			Help: "字段提示词执行总数",
		},
		[]string{"status"},
	)

	// WorkflowExecutionDuration 工作流执行耗时（秒）
	// 包含全部字段的模型调用，桶上限按 30 秒超时放宽
	WorkflowExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "workflowapi_workflow_execution_duration_seconds",
			Help:    "工作流执行耗时分布",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
