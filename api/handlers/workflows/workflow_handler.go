package workflows

import (
	"backend/internal/common"
	"backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkflowHandler 工作流管理 Handler
type WorkflowHandler struct {
	service *workflow.WorkflowService
}

// NewWorkflowHandler 创建 WorkflowHandler 实例
func NewWorkflowHandler(service *workflow.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{service: service}
}

// CreateWorkflow 创建工作流
// @Summary 创建工作流
// @Description 创建一个空工作流，名称全局唯一
// @Tags Workflows
// @Accept json
// @Produce json
// @Param request body CreateWorkflowRequest true "工作流创建参数"
// @Success 201 {object} workflow.Workflow
// @Failure 400 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse
// @Router /workflows [post]
func (h *WorkflowHandler) CreateWorkflow(c *gin.Context) {
	var req CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	wf, err := h.service.CreateWorkflow(c.Request.Context(), req.Name)
	if err != nil {
		common.ResponseFromError(c, err)
		return
	}

	common.ResponseCreated(c, wf)
}

// GetWorkflow 查询工作流详情
// @Summary 查询工作流详情
// @Description 返回工作流及其全部字段和提示词，按创建顺序排列
// @Tags Workflows
// @Produce json
// @Param id path string true "工作流 ID"
// @Success 200 {object} workflow.Workflow
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /workflows/{id} [get]
func (h *WorkflowHandler) GetWorkflow(c *gin.Context) {
	workflowID, ok := parseWorkflowID(c)
	if !ok {
		return
	}

	wf, err := h.service.GetWorkflowComplete(c.Request.Context(), workflowID)
	if err != nil {
		common.ResponseFromError(c, err)
		return
	}

	common.ResponseSuccess(c, wf)
}

// CreateField 为工作流创建字段及首个提示词
// @Summary 创建字段及提示词
// @Description 在工作流下创建一个字段和它的首个提示词，提示词写入失败时回滚字段
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "工作流 ID"
// @Param request body CreateFieldRequest true "字段与提示词创建参数"
// @Success 201 {object} workflow.Field
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /workflows/{id}/fields [post]
func (h *WorkflowHandler) CreateField(c *gin.Context) {
	workflowID, ok := parseWorkflowID(c)
	if !ok {
		return
	}

	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 请求体里的 workflow_id 允许省略，但提供时必须与路径一致
	if req.FieldData.WorkflowID != "" && req.FieldData.WorkflowID != workflowID {
		common.ResponseBadRequest(c, "请求体中的 workflow_id 与路径参数不一致")
		return
	}

	field, prompt, err := h.service.CreateFieldWithPrompt(
		c.Request.Context(),
		workflowID,
		req.FieldData.Name,
		req.FieldData.DataType,
		req.PromptData.PromptTemplate,
	)
	if err != nil {
		common.ResponseFromError(c, err)
		return
	}

	field.Prompts = []workflow.Prompt{*prompt}
	common.ResponseCreated(c, field)
}

// parseWorkflowID 解析并校验路径中的工作流 ID
// 非法 UUID 直接返回 400
func parseWorkflowID(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		common.ResponseBadRequest(c, "无效的工作流 ID 格式")
		return "", false
	}
	return id.String(), true
}
