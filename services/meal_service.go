package services

import (
	"errors"
	"strings"
	"time"

	"flareguard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEmptyDescription rejects a meal submission with a blank description;
// no record is created.
var ErrEmptyDescription = errors.New("meal description is required")

// fallback tag when the patient supplies none
const unclassifiedTag = "unclassified"

type MealRequest struct {
	Date        string `json:"date" form:"date"` // YYYY-MM-DD, empty = today
	Description string `json:"description" form:"description"`
	Tags        string `json:"tags" form:"tags"` // comma-separated
	Reaction    string `json:"reaction" form:"reaction"`
	Notes       string `json:"notes" form:"notes"`
	PhotoURL    string `json:"photo_url" form:"photo_url"`
}

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService { return &MealService{db: db} }

// SubmitMeal creates an immutable meal log. Descriptions are trimmed; an
// all-whitespace description is treated as absent and rejected.
func (s *MealService) SubmitMeal(userID uint, req MealRequest) (*models.MealLog, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	date, err := resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	reaction, err := normalizeReaction(req.Reaction)
	if err != nil {
		return nil, err
	}

	meal := &models.MealLog{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Tags:        strings.Join(ParseTags(req.Tags), ","),
		Reaction:    reaction,
		Notes:       strings.TrimSpace(req.Notes),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// ParseTags splits a comma-separated tag field, trimming entries and dropping
// blanks while preserving submission order. No usable tags yields the single
// sentinel tag "unclassified".
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = []string{unclassifiedTag}
	}
	return tags
}

func normalizeReaction(raw string) (string, error) {
	r := strings.ToLower(strings.TrimSpace(raw))
	switch r {
	case "":
		return models.ReactionSteady, nil
	case models.ReactionSteady, models.ReactionSuspect, models.ReactionEnergized:
		return r, nil
	default:
		return "", &ValidationError{Field: "reaction", Reason: "must be steady, suspect or energized"}
	}
}

// ListMeals returns every meal, most recent date first.
func (s *MealService) ListMeals(userID uint) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&meals).Error
	return meals, err
}

// ListMealsAsc returns meals in creation order, used by the correlator so
// first-seen tag casing is deterministic.
func (s *MealService) ListMealsAsc(userID uint) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListRecentMeals(userID uint, limit int) ([]models.MealLog, error) {
	if limit <= 0 {
		limit = 4
	}
	var meals []models.MealLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&meals).Error
	return meals, err
}
