package api

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealtrack-v2/backend/internal/models"
	"github.com/pageza/mealtrack-v2/backend/internal/service"
)

// Body weight and goal assumed for the advisory comment when the request
// is anonymous or the profile has no weight recorded.
const (
	defaultWeightKg = 60
	defaultGoal     = models.GoalMaintain
)

// MealHandler handles meal analysis, saving and daily listing
type MealHandler struct {
	meals     service.IMealService
	nutrition service.INutritionService
	storage   service.IStorageService
	profiles  service.IProfileService
	now       func() time.Time
}

// NewMealHandler creates a new MealHandler instance
func NewMealHandler(meals service.IMealService, nutrition service.INutritionService, storage service.IStorageService, profiles service.IProfileService) *MealHandler {
	return &MealHandler{
		meals:     meals,
		nutrition: nutrition,
		storage:   storage,
		profiles:  profiles,
		now:       time.Now,
	}
}

// Analyze handles POST /meals/analyze: one image in, one structured
// nutrition estimate out.
func (h *MealHandler) Analyze(c *gin.Context) {
	image, mimeType, _, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.nutrition.AnalyzeMealImage(c.Request.Context(), image, mimeType)
	if err != nil {
		if errors.Is(err, service.ErrNoJSONObject) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not extract structured data, please retry with the same or another image"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to analyze meal image"})
		return
	}

	draft := &service.MealDraft{
		Foods:      analysis.Foods,
		MealType:   analysis.MealType,
		Calories:   analysis.Calories,
		Protein:    analysis.Protein,
		Carbs:      analysis.Carbs,
		Fat:        analysis.Fat,
		Evaluation: analysis.Evaluation,
	}
	if userID := userIDFromContext(c); userID != nil {
		draft.UserID = userID.String()
	}
	if err := h.nutrition.SaveDraft(c.Request.Context(), draft); err != nil {
		// The analysis result is still usable without a stored draft
		log.Printf("[MealHandler] Failed to save analysis draft: %v", err)
		draft.ID = ""
	}

	c.JSON(http.StatusOK, AnalyzeMealResponse{
		DraftID:  draft.ID,
		Analysis: analysis,
	})
}

// Save handles POST /meals: upload the photo, then insert the record. The
// two steps are deliberately not transactional; an image whose row insert
// fails is left behind unreferenced.
func (h *MealHandler) Save(c *gin.Context) {
	var form SaveMealForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, mimeType, fileName, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := userIDFromContext(c)
	meal := h.mealFromForm(c, &form, userID)

	imageURL, err := h.storage.UploadMealImage(c.Request.Context(), image, fileName, mimeType)
	if err != nil {
		// Draft is kept so the client can retry without re-analyzing
		log.Printf("[MealHandler] Image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image, please retry"})
		return
	}
	meal.ImageURL = imageURL

	if meal.Evaluation == "" {
		meal.Evaluation = h.evaluate(c, meal, userID)
	}

	if _, err := h.meals.CreateMeal(c.Request.Context(), meal); err != nil {
		log.Printf("[MealHandler] Meal insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal, please retry"})
		return
	}

	if form.DraftID != "" {
		if err := h.nutrition.DeleteDraft(c.Request.Context(), form.DraftID); err != nil {
			log.Printf("[MealHandler] Failed to delete draft %s: %v", form.DraftID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// ListToday handles GET /meals/today
func (h *MealHandler) ListToday(c *gin.Context) {
	meals, err := h.meals.ListTodayMeals(c.Request.Context(), h.now(), userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// Summary handles GET /meals/summary
func (h *MealHandler) Summary(c *gin.Context) {
	summary, err := h.meals.DailySummary(c.Request.Context(), h.now(), userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// mealFromForm merges the stored draft (if any) with the user-confirmed
// fields. Posted values win over draft values.
func (h *MealHandler) mealFromForm(c *gin.Context, form *SaveMealForm, userID *uuid.UUID) *models.Meal {
	meal := &models.Meal{UserID: userID}

	if form.DraftID != "" {
		draft, err := h.nutrition.GetDraft(c.Request.Context(), form.DraftID)
		if err != nil {
			log.Printf("[MealHandler] Draft %s not found: %v", form.DraftID, err)
		} else {
			meal.Calories = draft.Calories
			meal.Protein = draft.Protein
			meal.Carbs = draft.Carbs
			meal.Fat = draft.Fat
			meal.MealType = draft.MealType
			meal.Evaluation = draft.Evaluation
		}
	}

	if form.Calories != nil {
		meal.Calories = *form.Calories
	}
	if form.Protein != nil {
		meal.Protein = *form.Protein
	}
	if form.Carbs != nil {
		meal.Carbs = *form.Carbs
	}
	if form.Fat != nil {
		meal.Fat = *form.Fat
	}
	if form.MealType != "" {
		meal.MealType = form.MealType
	}
	if form.Evaluation != "" {
		meal.Evaluation = form.Evaluation
	}

	return meal
}

// evaluate requests an advisory comment for the meal. The nutrition
// service degrades to a fixed fallback internally, so this never fails.
func (h *MealHandler) evaluate(c *gin.Context, meal *models.Meal, userID *uuid.UUID) string {
	weight := float64(defaultWeightKg)
	goal := defaultGoal
	if userID != nil {
		if user, err := h.profiles.GetProfile(c.Request.Context(), *userID); err == nil {
			if user.WeightKg > 0 {
				weight = user.WeightKg
			}
			if user.Goal != "" {
				goal = user.Goal
			}
		}
	}

	return h.nutrition.EvaluateMeal(c.Request.Context(), meal.Calories, meal.Protein, weight, goal)
}

// readImageFile reads the multipart "image" file and reports its declared
// media type.
func readImageFile(c *gin.Context) (data []byte, mimeType, fileName string, err error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", "", errors.New("image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", errors.New("failed to open image file")
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", errors.New("failed to read image file")
	}

	mimeType = fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return data, mimeType, fileHeader.Filename, nil
}

// userIDFromContext returns the authenticated user id, or nil for
// anonymous requests.
func userIDFromContext(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}
