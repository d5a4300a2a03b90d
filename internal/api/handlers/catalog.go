package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// ListStations 获取站点列表，支持 ?type= 过滤
func (h *Handler) ListStations(c *gin.Context) {
	typeFilter := models.StationType(c.Query("type"))

	stations, err := h.stationRepo.List(c.Request.Context(), typeFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stations})
}

// GetStation 获取单个站点
func (h *Handler) GetStation(c *gin.Context) {
	station, err := h.stationRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": station})
}

// ListServices 获取维保服务列表
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.serviceRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": services})
}
