package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// RuntimeConfig holds runtime-configurable portal settings
type RuntimeConfig struct {
	VillageName     string `json:"village_name"`
	WeatherLocation string `json:"weather_location"`
}

var (
	runtimeConfig     RuntimeConfig
	runtimeConfigLock sync.RWMutex
)

// InitRuntimeConfig initializes runtime config at startup
func InitRuntimeConfig(villageName, weatherLocation string) {
	runtimeConfigLock.Lock()
	defer runtimeConfigLock.Unlock()
	runtimeConfig = RuntimeConfig{
		VillageName:     villageName,
		WeatherLocation: weatherLocation,
	}
}

// GetRuntimeWeatherLocation returns the current default weather location
func GetRuntimeWeatherLocation() string {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()
	return runtimeConfig.WeatherLocation
}

// UpdatePortalSettingsRequest represents the request body for updating settings
type UpdatePortalSettingsRequest struct {
	VillageName     string `json:"village_name"`
	WeatherLocation string `json:"weather_location"`
}

// GetPortalSettings returns the current portal configuration
// GET /api/settings/portal
func GetPortalSettings(c *gin.Context) {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"village_name":     runtimeConfig.VillageName,
		"weather_location": runtimeConfig.WeatherLocation,
	})
}

// UpdatePortalSettings updates portal configuration at runtime
// PUT /api/settings/portal
func UpdatePortalSettings(c *gin.Context) {
	var req UpdatePortalSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runtimeConfigLock.Lock()
	if req.VillageName != "" {
		runtimeConfig.VillageName = req.VillageName
	}
	if req.WeatherLocation != "" {
		runtimeConfig.WeatherLocation = req.WeatherLocation
	}
	updated := runtimeConfig
	runtimeConfigLock.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message":          "Portal settings updated successfully",
		"village_name":     updated.VillageName,
		"weather_location": updated.WeatherLocation,
	})
}
