package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"flareguard/config"
	"flareguard/models"
	"flareguard/services"

	"github.com/gin-gonic/gin"
)

type MealView struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Reaction    string   `json:"reaction"`
	Notes       string   `json:"notes"`
	PhotoURL    string   `json:"photo_url,omitempty"`
}

func NewMealView(m *models.MealLog) MealView {
	return MealView{
		ID:          m.ID,
		Date:        m.Date.Format("2006-01-02"),
		Description: m.Description,
		Tags:        m.TagList(),
		Reaction:    m.Reaction,
		Notes:       m.Notes,
		PhotoURL:    m.PhotoURL,
	}
}

func SubmitMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.MealRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewMealService(config.DB)
	meal, err := svc.SubmitMeal(userID, req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrEmptyDescription):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, NewMealView(meal))
}

func ListMeals(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	svc := services.NewMealService(config.DB)

	var (
		meals []models.MealLog
		err   error
	)
	if v := c.Query("recent"); v != "" {
		limit, _ := strconv.Atoi(v)
		meals, err = svc.ListRecentMeals(userID, limit)
	} else {
		meals, err = svc.ListMeals(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]MealView, 0, len(meals))
	for i := range meals {
		views = append(views, NewMealView(&meals[i]))
	}
	c.JSON(http.StatusOK, views)
}

type PhotoTagRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// SuggestMealTags uploads a meal photo and returns label-derived tag
// suggestions the client can prefill into the meal form.
func SuggestMealTags(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PhotoTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	svc, err := services.NewPhotoTagService()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := svc.SuggestTags(userID, req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
