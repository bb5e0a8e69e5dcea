package workflow

import "time"

// DataType 字段数据类型枚举
type DataType string

const (
	DataTypeText    DataType = "text"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeDate    DataType = "date"
	DataTypeEmail   DataType = "email"
	DataTypeURL     DataType = "url"
	DataTypeJSON    DataType = "json"
)

// ValidDataTypes 全部合法的数据类型
var ValidDataTypes = []DataType{
	DataTypeText,
	DataTypeNumber,
	DataTypeBoolean,
	DataTypeDate,
	DataTypeEmail,
	DataTypeURL,
	DataTypeJSON,
}

// IsValid 判断数据类型是否合法
func (d DataType) IsValid() bool {
	for _, t := range ValidDataTypes {
		if d == t {
			return true
		}
	}
	return false
}

// Workflow 工作流模型
type Workflow struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Fields []Field `gorm:"foreignKey:WorkflowID;references:ID" json:"fields,omitempty"`
}

// TableName 指定表名
func (Workflow) TableName() string {
	return "workflows"
}

// Field 工作流字段模型
type Field struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	WorkflowID string    `gorm:"type:varchar(36);not null;index" json:"workflow_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	DataType   DataType  `gorm:"type:varchar(20);not null" json:"data_type"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Prompts []Prompt `gorm:"foreignKey:FieldID;references:ID" json:"prompts,omitempty"`
}

// TableName 指定表名
func (Field) TableName() string {
	return "fields"
}

// Prompt 字段提示词模型
type Prompt struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FieldID        string    `gorm:"type:varchar(36);not null;index" json:"field_id"`
	PromptTemplate string    `gorm:"type:text;not null" json:"prompt_template"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Prompt) TableName() string {
	return "prompts"
}
