package api

import (
	"net/http"

	_ "backend/api/docs"
	"backend/api/handlers/workflows"
	"backend/internal/common"
	"backend/internal/config"
	"backend/internal/infra"
	"backend/internal/metrics"
	workflowSvc "backend/internal/workflow"
	"backend/internal/workflow/executor"
	"backend/pkg/aiinterface"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// ServiceInfo 根端点返回的服务信息
type ServiceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// SetupRouter 设置并返回 Gin 路由
func SetupRouter(db *gorm.DB, cfg *config.Config, modelClient aiinterface.ModelClient) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(CORS())
	router.Use(metrics.PrometheusMiddleware())

	// 组装服务
	svc := workflowSvc.NewWorkflowService(db)
	promptExec := executor.NewPromptExecutor(
		modelClient,
		cfg.AI.OpenAI.ChatModel(),
		cfg.AI.OpenAI.ChatTimeout(),
	)
	engine := executor.NewEngine(svc, promptExec)

	wfHandler := workflows.NewWorkflowHandler(svc)
	execHandler := workflows.NewExecuteHandler(engine)

	// 业务路由
	router.POST("/workflows", wfHandler.CreateWorkflow)
	router.GET("/workflows/:id", wfHandler.GetWorkflow)
	router.POST("/workflows/:id/fields", wfHandler.CreateField)
	router.POST("/workflows/:id/execute", execHandler.ExecuteWorkflow)

	// 根端点：服务信息
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, ServiceInfo{
			Message: "AI Configurable Workflow API",
			Version: "1.0.0",
			Endpoints: map[string]string{
				"workflows":        "/workflows",
				"workflow_detail":  "/workflows/{workflow_id}",
				"add_field":        "/workflows/{workflow_id}/fields",
				"execute_workflow": "/workflows/{workflow_id}/execute",
				"health":           "/health",
				"metrics":          "/metrics",
			},
		})
	})

	// 健康检查：对存储做一次最小查询
	router.GET("/health", func(c *gin.Context) {
		if err := infra.HealthCheck(db); err != nil {
			c.JSON(common.HTTPStatus(common.CodeServiceUnavailable), gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
				"error":    err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// 可观测性与文档
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
