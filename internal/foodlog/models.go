package foodlog

import (
	"time"

	"github.com/google/uuid"
)

// Meal slots.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Entry sources.
const (
	SourceSearch   = "search"
	SourceBarcode  = "barcode"
	SourcePhoto    = "photo"
	SourceCustom   = "custom"
	SourceMealPlan = "meal_plan"
)

// Entry is one logged food item. Calories and macros are already resolved
// (scaled by servings and size factor) at logging time.
type Entry struct {
	ID       uuid.UUID `json:"id"`
	FoodID   string    `json:"food_id"`
	FoodName string    `json:"food_name"`
	Servings float64   `json:"servings"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatG     float64   `json:"fat_g"`
	MealSlot string    `json:"meal_slot"`
	Source   string    `json:"source"`
	LoggedAt time.Time `json:"logged_at"`

	PhotoKey     string   `json:"photo_key,omitempty"`
	SizeFactor   *float64 `json:"size_factor,omitempty"`
	ServingLabel string   `json:"serving_label,omitempty"`

	// AI detection snapshot taken at logging time (photo source).
	AIDetectedName string   `json:"ai_detected_name,omitempty"`
	AIConfidence   *float64 `json:"ai_confidence,omitempty"` // 0-100
}

// EntryUpdate is a partial update for an entry; nil fields stay unchanged.
type EntryUpdate struct {
	Servings *float64 `json:"servings,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	ProteinG *float64 `json:"protein_g,omitempty"`
	CarbsG   *float64 `json:"carbs_g,omitempty"`
	FatG     *float64 `json:"fat_g,omitempty"`
	MealSlot *string  `json:"meal_slot,omitempty"`
}

// FavoriteFood is a user-saved food item for quick logging.
type FavoriteFood struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	ServingSize string  `json:"serving_size"`
	Barcode     string  `json:"barcode,omitempty"`
}

// Equivalent is a static reference portion used for calorie suggestions
// ("one bowl of rice"-style comparisons).
type Equivalent struct {
	Name        string  `json:"name"`
	LocalName   string  `json:"local_name"`
	Kcal        float64 `json:"kcal_per_serving"`
	CarbsG      float64 `json:"carbs_g"`
	ProteinG    float64 `json:"protein_g"`
	FatG        float64 `json:"fat_g"`
	ServingName string  `json:"serving_name"`
}

// Macros is a protein/carb/fat triple in grams.
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// State is the snapshot form of the food collection.
type State struct {
	Entries     []Entry        `json:"food_logs"`
	Favorites   []FavoriteFood `json:"favorite_foods"`
	Equivalents []Equivalent   `json:"reference_data"`
}

// DaySummary — ответ для GET /v1/food-logs/summary
type DaySummary struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Macros   Macros  `json:"macros"`
	Entries  int     `json:"entries"`
}
