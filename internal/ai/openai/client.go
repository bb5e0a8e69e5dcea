package openai

import (
	"context"
	"errors"
	"net/http"

	"backend/pkg/aiinterface"

	openai "github.com/sashabaranov/go-openai"
)

// Client OpenAI 客户端适配器
type Client struct {
	client  *openai.Client
	modelID string
}

// NewClient 创建 OpenAI 客户端
func NewClient(config *aiinterface.ClientConfig) (*Client, error) {
	// 验证配置
	if config.APIKey == "" {
		return nil, aiinterface.NewClientError(aiinterface.ErrorTypeAuth, "OpenAI API Key 不能为空", nil)
	}

	// 创建配置
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.OrgID != "" {
		clientConfig.OrgID = config.OrgID
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		modelID: config.Model,
	}, nil
}

// ChatCompletion 对话补全（非流式）
// 单次调用不做重试，失败语义由调用方按字段粒度处理
func (c *Client) ChatCompletion(ctx context.Context, req *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	// 转换消息格式
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	// 请求级模型优先于客户端默认模型
	model := req.Model
	if model == "" {
		model = c.modelID
	}

	openaiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return nil, wrapError(err)
	}

	// 转换响应
	if len(resp.Choices) == 0 {
		return nil, aiinterface.NewClientError(aiinterface.ErrorTypeServerError, "API 返回空响应", nil)
	}

	return &aiinterface.ChatCompletionResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Content: resp.Choices[0].Message.Content,
		Usage: aiinterface.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Name 返回客户端名称
func (c *Client) Name() string {
	return "openai"
}

// Close 关闭客户端
func (c *Client) Close() error {
	// OpenAI 客户端无需显式关闭
	return nil
}

// wrapError 按结构化错误信息分类包装
func wrapError(err error) *aiinterface.ClientError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		var errType aiinterface.ErrorType
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			errType = aiinterface.ErrorTypeAuth
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			errType = aiinterface.ErrorTypeRateLimit
		case apiErr.HTTPStatusCode == http.StatusBadRequest:
			errType = aiinterface.ErrorTypeInvalidParams
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			errType = aiinterface.ErrorTypeServerError
		default:
			errType = aiinterface.ErrorTypeUnknown
		}
		return aiinterface.NewClientError(errType, "OpenAI API 错误", err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return aiinterface.NewClientError(aiinterface.ErrorTypeNetwork, "OpenAI 请求超时或被取消", err)
	}

	return aiinterface.NewClientError(aiinterface.ErrorTypeNetwork, "OpenAI 请求失败", err)
}
