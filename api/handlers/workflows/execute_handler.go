package workflows

import (
	"backend/internal/common"
	"backend/internal/workflow"
	"backend/internal/workflow/executor"

	"github.com/gin-gonic/gin"
)

// ExecuteHandler 工作流执行 Handler
type ExecuteHandler struct {
	engine *executor.Engine
}

// NewExecuteHandler 创建 ExecuteHandler 实例
func NewExecuteHandler(engine *executor.Engine) *ExecuteHandler {
	return &ExecuteHandler{engine: engine}
}

// ExecuteWorkflow 执行工作流
// @Summary 执行工作流
// @Description 按字段创建顺序串行执行每个字段的首个提示词并汇总结果，单字段失败不中断批次
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "工作流 ID"
// @Param request body ExecuteWorkflowRequest true "执行参数"
// @Success 200 {object} executor.ExecutionReport
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /workflows/{id}/execute [post]
func (h *ExecuteHandler) ExecuteWorkflow(c *gin.Context) {
	workflowID, ok := parseWorkflowID(c)
	if !ok {
		return
	}

	var req ExecuteWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	userInput, err := workflow.ValidateUserInput(req.UserInput)
	if err != nil {
		common.ResponseFromError(c, err)
		return
	}

	report, err := h.engine.Execute(c.Request.Context(), workflowID, userInput)
	if err != nil {
		common.ResponseFromError(c, err)
		return
	}

	common.ResponseSuccess(c, report)
}
