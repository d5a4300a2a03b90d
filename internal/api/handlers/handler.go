package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/api/gemini"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/repository"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/service"
	"github.com/aomkarpatil97-boop/power-network-platform/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger         *zap.Logger
	stationRepo    *repository.StationRepository
	serviceRepo    *repository.ServiceRepository
	sessionService *service.SessionService
	bookingService *service.BookingService
	advisor        *gemini.Advisor
	wsHub          *ws.Hub
	upgrader       websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	stationRepo *repository.StationRepository,
	serviceRepo *repository.ServiceRepository,
	sessionService *service.SessionService,
	bookingService *service.BookingService,
	advisor *gemini.Advisor,
	wsHub *ws.Hub,
) *Handler {
	return &Handler{
		logger:         logger,
		stationRepo:    stationRepo,
		serviceRepo:    serviceRepo,
		sessionService: sessionService,
		bookingService: bookingService,
		advisor:        advisor,
		wsHub:          wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 会话
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/logout", h.Logout)
		api.GET("/session", h.GetSession)
		api.PUT("/profile", h.UpdateProfile)
		api.GET("/vehicle", h.GetVehicle)
		api.PUT("/vehicle", h.UpdateVehicle)
		api.GET("/view", h.GetView)
		api.POST("/view", h.SelectView)

		// 目录
		api.GET("/stations", h.ListStations)
		api.GET("/stations/:id", h.GetStation)
		api.GET("/services", h.ListServices)

		// 预约
		api.GET("/bookings", h.ListBookings)
		api.POST("/bookings", h.CreateBooking)
		api.POST("/bookings/:id/cancel", h.CancelBooking)
		api.POST("/bookings/:id/status", h.SetBookingStatus)

		// 统计
		api.GET("/provider/stats", h.ProviderStats)
		api.GET("/admin/stats", h.AdminStats)

		// 智能助手
		api.POST("/assistant", h.AskAssistant)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// sessionFromRequest 通过 X-Session-ID 定位会话，未找到时尝试从存储恢复
func (h *Handler) sessionFromRequest(c *gin.Context) (*service.Session, bool) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing session"})
		return nil, false
	}

	sess, err := h.sessionService.Resume(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return nil, false
	}
	return sess, true
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}
