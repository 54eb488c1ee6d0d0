package handler

import (
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	mongoClient *mongo.Client
}

func NewHealthHandler(mongoClient *mongo.Client) *HealthHandler {
	return &HealthHandler{mongoClient: mongoClient}
}

// GetHealth reports persistence reachability and host load.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"mongo":            "up",
		"cpu_percent":      utils.GetCPUUsage(),
		"mem_used_percent": utils.GetMemoryUsage(),
	}

	if err := utils.PingMongo(c.Request.Context(), h.mongoClient); err != nil {
		body["status"] = "degraded"
		body["mongo"] = "down"
		utils.ServiceUnavailable(c, body)
		return
	}

	utils.Success(c, body)
}
