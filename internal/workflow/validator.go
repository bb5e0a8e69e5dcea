package workflow

import (
	"fmt"
	"strings"

	"backend/internal/common"
)

// ValidateWorkflowName 校验并规范化工作流名称
// 返回去除首尾空白后的名称
func ValidateWorkflowName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", common.NewBusinessError(common.CodeInvalidRequest, "工作流名称不能为空")
	}
	return trimmed, nil
}

// ValidateFieldName 校验并规范化字段名称
func ValidateFieldName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", common.NewBusinessError(common.CodeInvalidRequest, "字段名称不能为空")
	}
	return trimmed, nil
}

// ValidateDataType 校验字段数据类型
func ValidateDataType(dataType string) (DataType, error) {
	dt := DataType(strings.TrimSpace(dataType))
	if !dt.IsValid() {
		return "", common.NewBusinessError(common.CodeInvalidRequest,
			fmt.Sprintf("不支持的数据类型: %s（合法值: text, number, boolean, date, email, url, json）", dataType))
	}
	return dt, nil
}

// ValidatePromptTemplate 校验并规范化提示词模板
func ValidatePromptTemplate(template string) (string, error) {
	trimmed := strings.TrimSpace(template)
	if trimmed == "" {
		return "", common.NewBusinessError(common.CodeInvalidRequest, "提示词模板不能为空")
	}
	return trimmed, nil
}

// ValidateUserInput 校验并规范化执行输入
func ValidateUserInput(userInput string) (string, error) {
	trimmed := strings.TrimSpace(userInput)
	if trimmed == "" {
		return "", common.NewBusinessError(common.CodeInvalidRequest, "用户输入不能为空")
	}
	return trimmed, nil
}
