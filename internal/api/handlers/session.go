package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/service"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/view"
)

// signupRequest 注册请求体
type signupRequest struct {
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required"`
	Role            string          `json:"role" binding:"required"`
	BusinessType    string          `json:"business_type"`
	PlugCount       int             `json:"plug_count"`
	TechnicianCount int             `json:"technician_count"`
	Vehicle         *models.Vehicle `json:"vehicle"`
}

// Signup 注册并创建会话
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess, err := h.sessionService.Signup(c.Request.Context(), service.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Role:            models.UserRole(req.Role),
		BusinessType:    models.BusinessType(req.BusinessType),
		PlugCount:       req.PlugCount,
		TechnicianCount: req.TechnicianCount,
		Vehicle:         req.Vehicle,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := sess.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"data":       snap,
	})
}

// GetSession 恢复会话状态
func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"data":       sess.Snapshot(),
	})
}

// Logout 登出并清空会话记录
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	h.sessionService.Logout(c.Request.Context(), sess)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// updateProfileRequest 资料编辑请求体
type updateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Avatar          string `json:"avatar"`
	PlugCount       int    `json:"plug_count"`
	TechnicianCount int    `json:"technician_count"`
}

// UpdateProfile 更新用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user := h.sessionService.UpdateProfile(c.Request.Context(), sess, service.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Avatar:          req.Avatar,
		PlugCount:       req.PlugCount,
		TechnicianCount: req.TechnicianCount,
	})

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// GetVehicle 获取车辆状态
func (h *Handler) GetVehicle(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sess.Snapshot().Vehicle})
}

// UpdateVehicle 更新车辆参数
func (h *Handler) UpdateVehicle(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req models.Vehicle
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	vehicle := h.sessionService.UpdateVehicle(c.Request.Context(), sess, req)
	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// GetView 获取当前视图
func (h *Handler) GetView(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sess.Snapshot().View})
}

// selectViewRequest 视图选择请求体
type selectViewRequest struct {
	View string `json:"view" binding:"required"`
}

// SelectView 选择视图，返回按角色校正后的视图
func (h *Handler) SelectView(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req selectViewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resolved := h.sessionService.SelectView(sess, view.View(req.View))
	if string(resolved) != req.View {
		h.logger.Debug("View redirected",
			zap.String("requested", req.View),
			zap.String("resolved", string(resolved)))
	}

	c.JSON(http.StatusOK, gin.H{"data": resolved})
}
