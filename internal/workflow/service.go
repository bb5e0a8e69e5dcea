package workflow

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/common"
	"backend/internal/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkflowService 工作流持久化服务
type WorkflowService struct {
	db *gorm.DB
}

// NewWorkflowService 创建 WorkflowService 实例
func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// CreateWorkflow 创建工作流
// 名称重复返回 CodeConflict 业务错误
func (s *WorkflowService) CreateWorkflow(ctx context.Context, name string) (*Workflow, error) {
	trimmed, err := ValidateWorkflowName(name)
	if err != nil {
		return nil, err
	}

	// 预检唯一性，插入时的唯一索引冲突作为并发兜底
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&Workflow{}).
		Where("name = ?", trimmed).
		Count(&count).Error; err != nil {
		return nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"查询工作流名称失败", err)
	}
	if count > 0 {
		return nil, common.NewBusinessError(common.CodeConflict,
			fmt.Sprintf("工作流名称已存在: %s", trimmed))
	}

	wf := &Workflow{
		ID:   uuid.New().String(),
		Name: trimmed,
	}
	if err := s.db.WithContext(ctx).Create(wf).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, common.NewBusinessError(common.CodeConflict,
				fmt.Sprintf("工作流名称已存在: %s", trimmed))
		}
		return nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"创建工作流失败", err)
	}
	return wf, nil
}

// GetWorkflow 按 ID 查询工作流（不含关联）
func (s *WorkflowService) GetWorkflow(ctx context.Context, workflowID string) (*Workflow, error) {
	var wf Workflow
	err := s.db.WithContext(ctx).First(&wf, "id = ?", workflowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewBusinessError(common.CodeWorkflowNotFound, "")
		}
		return nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"查询工作流失败", err)
	}
	return &wf, nil
}

// GetWorkflowComplete 按 ID 查询工作流及其全部字段和提示词
// 字段与提示词均按创建顺序返回
func (s *WorkflowService) GetWorkflowComplete(ctx context.Context, workflowID string) (*Workflow, error) {
	var wf Workflow
	err := s.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Fields.Prompts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&wf, "id = ?", workflowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewBusinessError(common.CodeWorkflowNotFound, "")
		}
		return nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"查询工作流详情失败", err)
	}
	return &wf, nil
}

// ListFields 按创建顺序查询工作流的全部字段
func (s *WorkflowService) ListFields(ctx context.Context, workflowID string) ([]Field, error) {
	var fields []Field
	err := s.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("created_at ASC, id ASC").
		Find(&fields).Error
	if err != nil {
		return nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"查询字段列表失败", err)
	}
	return fields, nil
}

// ListPrompts 按创建顺序查询字段的全部提示词
func (s *WorkflowService) ListPrompts(ctx context.Context, fieldID string) ([]Prompt, error) {
	var prompts []Prompt
	err := s.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("created_at ASC, id ASC").
		Find(&prompts).Error
	if err != nil {
		return nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"查询提示词列表失败", err)
	}
	return prompts, nil
}

// CreateFieldWithPrompt 为工作流创建字段及其首个提示词
// 提示词写入失败时补偿删除已写入的字段，避免留下无提示词的孤儿字段
func (s *WorkflowService) CreateFieldWithPrompt(ctx context.Context, workflowID, name, dataType, promptTemplate string) (*Field, *Prompt, error) {
	fieldName, err := ValidateFieldName(name)
	if err != nil {
		return nil, nil, err
	}
	dt, err := ValidateDataType(dataType)
	if err != nil {
		return nil, nil, err
	}
	template, err := ValidatePromptTemplate(promptTemplate)
	if err != nil {
		return nil, nil, err
	}

	// 工作流必须存在
	if _, err := s.GetWorkflow(ctx, workflowID); err != nil {
		return nil, nil, err
	}

	field := &Field{
		ID:         uuid.New().String(),
		WorkflowID: workflowID,
		Name:       fieldName,
		DataType:   dt,
	}
	if err := s.db.WithContext(ctx).Create(field).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, nil, common.NewBusinessError(common.CodeConflict,
				fmt.Sprintf("字段已存在: %s", fieldName))
		}
		return nil, nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"创建字段失败", err)
	}

	prompt := &Prompt{
		ID:             uuid.New().String(),
		FieldID:        field.ID,
		PromptTemplate: template,
	}
	if err := s.db.WithContext(ctx).Create(prompt).Error; err != nil {
		// 补偿删除字段；补偿失败必须记录并上报，不能静默吞掉
		if delErr := s.deleteField(ctx, field.ID); delErr != nil {
			logger.Error("提示词创建失败后补偿删除字段失败",
				zap.String("workflow_id", workflowID),
				zap.String("field_id", field.ID),
				zap.Error(delErr),
			)
			return nil, nil, common.WrapBusinessError(common.CodePersistenceFailed,
				"创建提示词失败且字段补偿删除失败", errors.Join(err, delErr))
		}
		return nil, nil, common.WrapBusinessError(common.CodePersistenceFailed,
			"创建提示词失败", err)
	}

	return field, prompt, nil
}

// deleteField 补偿删除字段
func (s *WorkflowService) deleteField(ctx context.Context, fieldID string) error {
	return s.db.WithContext(ctx).Delete(&Field{}, "id = ?", fieldID).Error
}

// isDuplicateKeyError 判断是否为唯一约束冲突
// 依赖 GORM 的错误翻译和 PostgreSQL 的结构化错误码，不做字符串匹配
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
