package workflows

// CreateWorkflowRequest 创建工作流请求
type CreateWorkflowRequest struct {
	Name string `json:"name" binding:"required"`
}

// FieldData 字段创建数据
// WorkflowID 可省略，提供时必须与路径参数一致
type FieldData struct {
	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name" binding:"required"`
	DataType   string `json:"data_type" binding:"required"`
}

// PromptData 提示词创建数据
type PromptData struct {
	PromptTemplate string `json:"prompt_template" binding:"required"`
}

// CreateFieldRequest 创建字段及首个提示词请求
type CreateFieldRequest struct {
	FieldData  FieldData  `json:"field_data" binding:"required"`
	PromptData PromptData `json:"prompt_data" binding:"required"`
}

// ExecuteWorkflowRequest 执行工作流请求
type ExecuteWorkflowRequest struct {
	UserInput string `json:"user_input" binding:"required"`
}
