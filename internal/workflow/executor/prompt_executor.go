package executor

import (
	"context"
	"strings"
	"time"

	"backend/internal/common"
	"backend/pkg/aiinterface"
)

// 固定的系统指令，所有字段提示词共用
const systemInstruction = "You are a helpful AI assistant. Follow the instructions in the prompt carefully."

const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
	defaultTimeout     = 30 * time.Second
	pingTimeout        = 10 * time.Second
)

// PromptExecutor 提示词执行器
// 把字段提示词模板和用户输入拼装成一次对话补全调用
type PromptExecutor struct {
	client  aiinterface.ModelClient
	model   string
	timeout time.Duration
}

// NewPromptExecutor 创建提示词执行器
// model 为空时由客户端默认模型兜底，timeoutSeconds <= 0 时使用 30 秒
func NewPromptExecutor(client aiinterface.ModelClient, model string, timeoutSeconds int) *PromptExecutor {
	timeout := defaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &PromptExecutor{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// ExecuteOptions 单次执行的参数覆盖
type ExecuteOptions struct {
	Model         string  // 覆盖模型标识
	MaxTokens     int     // 覆盖最大 Token 数
	Temperature   float64 // 覆盖温度参数
	SystemMessage string  // 覆盖系统指令
}

// Execute 用默认参数执行一次提示词
// 单次调用，不重试；失败由调用方按字段粒度捕获
func (e *PromptExecutor) Execute(ctx context.Context, promptTemplate, userInput string) (string, error) {
	return e.ExecuteWithOptions(ctx, promptTemplate, userInput, nil)
}

// ExecuteWithOptions 执行一次提示词，允许覆盖模型与解码参数
func (e *PromptExecutor) ExecuteWithOptions(ctx context.Context, promptTemplate, userInput string, opts *ExecuteOptions) (string, error) {
	model := e.model
	maxTokens := defaultMaxTokens
	temperature := defaultTemperature
	systemMessage := systemInstruction
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
		if opts.Temperature > 0 {
			temperature = opts.Temperature
		}
		if opts.SystemMessage != "" {
			systemMessage = opts.SystemMessage
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := &aiinterface.ChatCompletionRequest{
		Model: model,
		Messages: []aiinterface.Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: promptTemplate + "\n\nUser Input: " + userInput},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := e.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", common.WrapBusinessError(common.CodePromptExecutionFailed,
			"提示词执行失败: "+err.Error(), err)
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", common.NewBusinessError(common.CodePromptExecutionFailed, "模型返回空内容")
	}
	return content, nil
}

// Ping 连接探活
// 发送一次最小补全请求，用于启动时确认模型服务可达
func (e *PromptExecutor) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req := &aiinterface.ChatCompletionRequest{
		Model: e.model,
		Messages: []aiinterface.Message{
			{Role: "user", Content: "ping"},
		},
		MaxTokens: 1,
	}
	_, err := e.client.ChatCompletion(ctx, req)
	return err
}
