package controllers

import (
	"net/http"

	"flareguard/config"
	"flareguard/services"

	"github.com/gin-gonic/gin"
)

// JoinWaitlist is public: the landing page posts here before any account
// exists.
func JoinWaitlist(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	svc := services.NewWaitlistService(config.DB)
	entry, err := svc.AddSignup(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "you're on the list",
		"email":   entry.Email,
		"plan":    entry.Plan,
	})
}

func GetWaitlistAnalytics(c *gin.Context) {
	svc := services.NewWaitlistService(config.DB)
	analytics, err := svc.Analytics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
