package common

// ============================================================================
// 业务状态码定义
// ============================================================================

const (
	// 成功状态码
	CodeSuccess = 0

	// 通用错误码 (1000-1999)
	CodeInvalidRequest     = 1000 // 请求参数错误
	CodeNotFound           = 1003 // 资源不存在
	CodeConflict           = 1004 // 资源冲突
	CodeInternalError      = 1005 // 内部错误
	CodeServiceUnavailable = 1006 // 服务不可用

	// 工作流相关错误码 (5000-5099)
	CodeWorkflowNotFound      = 5000 // 工作流不存在
	CodeFieldNotFound         = 5001 // 字段不存在
	CodePersistenceFailed     = 5002 // 持久化失败
	CodePromptExecutionFailed = 5003 // 提示词执行失败
)

// ErrorMessages 错误码对应的默认消息
var ErrorMessages = map[int]string{
	CodeSuccess:            "操作成功",
	CodeInvalidRequest:     "请求参数错误",
	CodeNotFound:           "资源不存在",
	CodeConflict:           "资源冲突",
	CodeInternalError:      "系统内部错误",
	CodeServiceUnavailable: "服务暂不可用",

	CodeWorkflowNotFound:      "工作流不存在",
	CodeFieldNotFound:         "字段不存在",
	CodePersistenceFailed:     "数据持久化失败",
	CodePromptExecutionFailed: "提示词执行失败",
}

// GetErrorMessage 获取错误码对应的消息
func GetErrorMessage(code int) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return "未知错误"
}

// ============================================================================
// 通用业务错误类型
// ============================================================================

// BusinessError 业务错误
type BusinessError struct {
	Code    int    // 错误码
	Message string // 错误信息
	Err     error  // 底层错误（可选）
}

// Error 实现error接口
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap 返回底层错误，支持 errors.Is / errors.As
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	if message == "" {
		message = GetErrorMessage(code)
	}
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// WrapBusinessError 创建携带底层错误的业务错误
func WrapBusinessError(code int, message string, err error) *BusinessError {
	be := NewBusinessError(code, message)
	be.Err = err
	return be
}

// ============================================================================
// 通用响应类型
// ============================================================================

// APIResponse 统一错误响应格式（成功响应直接返回资源本身）
type APIResponse struct {
	Success bool   `json:"success"`           // 是否成功
	Message string `json:"message,omitempty"` // 提示信息
	Code    int    `json:"code"`              // 业务状态码
}

// ErrorResponse 错误响应
func ErrorResponse(code int, message string) APIResponse {
	if message == "" {
		message = GetErrorMessage(code)
	}
	return APIResponse{
		Success: false,
		Message: message,
		Code:    code,
	}
}
