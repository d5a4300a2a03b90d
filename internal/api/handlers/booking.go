package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/service"
)

// ListBookings 获取预约列表，支持 ?status= 过滤
func (h *Handler) ListBookings(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	statusFilter := models.BookingStatus(c.Query("status"))
	bookings := h.bookingService.List(sess, statusFilter)

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// createBookingRequest 创建预约请求体
type createBookingRequest struct {
	Type          string `json:"type" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PriceMinor    int64  `json:"price_minor"`
	Price         string `json:"price"` // 旧客户端的格式化价格字符串，如 "₹450.00"
	PaymentMethod string `json:"payment_method"`
	Location      string `json:"location"`
	UserName      string `json:"user_name"`
	UserAvatar    string `json:"user_avatar"`
}

// CreateBooking 创建预约
func (h *Handler) CreateBooking(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.PriceMinor == 0 && req.Price != "" {
		req.PriceMinor = models.ParsePriceString(req.Price)
	}

	booking, err := h.bookingService.Create(c.Request.Context(), sess, service.CreateBookingInput{
		Type:          models.BookingType(req.Type),
		Title:         req.Title,
		Date:          req.Date,
		Time:          req.Time,
		PriceMinor:    req.PriceMinor,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Location:      req.Location,
		UserName:      req.UserName,
		UserAvatar:    req.UserAvatar,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

// CancelBooking 取消预约（已终态时为无操作）
func (h *Handler) CancelBooking(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.bookingService.Cancel(c.Request.Context(), sess, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Booking cancelled",
		"booking_id": id,
	})
}

// setStatusRequest 状态流转请求体
type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetBookingStatus 服务商侧状态流转
func (h *Handler) SetBookingStatus(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id := c.Param("id")
	err := h.bookingService.SetStatus(c.Request.Context(), sess, id, models.BookingStatus(req.Status))
	if err != nil {
		h.logger.Warn("Rejected booking transition",
			zap.String("booking_id", id),
			zap.String("target", req.Status),
			zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Status updated",
		"booking_id": id,
		"status":     req.Status,
	})
}

// ProviderStats 服务商仪表盘统计
func (h *Handler) ProviderStats(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if snap.User.Role != models.RoleProvider {
		c.JSON(http.StatusForbidden, gin.H{"error": "Provider role required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.bookingService.ProviderStatsFor(sess)})
}

// AdminStats 运营总览统计
func (h *Handler) AdminStats(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.bookingService.AdminStatsFor(sess)})
}
