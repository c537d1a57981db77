package controllers

import (
	"errors"
	"net/http"

	"flareguard/config"
	"flareguard/models"
	"flareguard/services"

	"github.com/gin-gonic/gin"
)

// DailyLogView is the API shape of a stored check-in, with the derived
// lists split out of their persisted form.
type DailyLogView struct {
	Date            string   `json:"date"`
	SleepHours      float64  `json:"sleep_hours"`
	Steps           int      `json:"steps"`
	HRV             float64  `json:"hrv"`
	PainLevel       int      `json:"pain_level"`
	StressLevel     int      `json:"stress_level"`
	MedicationTaken bool     `json:"medication_taken"`
	Notes           string   `json:"notes"`
	RiskScore       int      `json:"risk_score"`
	Triggers        []string `json:"triggers"`
	Guidance        []string `json:"guidance"`
}

func NewDailyLogView(l *models.DailyLog) DailyLogView {
	return DailyLogView{
		Date:            l.Date.Format("2006-01-02"),
		SleepHours:      l.SleepHours,
		Steps:           l.Steps,
		HRV:             l.HRV,
		PainLevel:       l.PainLevel,
		StressLevel:     l.StressLevel,
		MedicationTaken: l.MedicationTaken,
		Notes:           l.Notes,
		RiskScore:       l.RiskScore,
		Triggers:        l.TriggerList(),
		Guidance:        l.GuidanceList(),
	}
}

func SubmitCheckIn(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.CheckInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewCheckInService(config.DB)
	log, err := svc.SubmitCheckIn(userID, req)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, NewDailyLogView(log))
}

func ListCheckIns(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	svc := services.NewCheckInService(config.DB)
	logs, err := svc.ListLogs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]DailyLogView, 0, len(logs))
	for i := range logs {
		views = append(views, NewDailyLogView(&logs[i]))
	}
	c.JSON(http.StatusOK, views)
}

// --- helpers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}
