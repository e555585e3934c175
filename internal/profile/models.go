package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the active account's user profile. The five derived fields
// (bmr, tdee, daily_calorie_target, protein/carb/fat targets) are always a
// pure function of the raw inputs and are overwritten on every derivation.
type Profile struct {
	ID                    string  `json:"id"`
	Gender                string  `json:"gender"` // male | female
	Age                   int     `json:"age"`
	HeightCm              float64 `json:"height_cm"`
	WeightKg              float64 `json:"weight_kg"`
	BodyFatPct            float64 `json:"body_fat_pct"`
	ActivityLevel         float64 `json:"activity_level"` // 1.2 | 1.375 | 1.55 | 1.725 | 1.9
	TargetWeightKg        float64 `json:"target_weight_kg"`
	TargetDate            string  `json:"target_date"` // YYYY-MM-DD
	DietExerciseRatio     int     `json:"diet_exercise_ratio"` // 0-100, diet preference
	WeightLossSpeedKg     float64 `json:"weight_loss_speed_kg"` // kg per week
	Allergies             string  `json:"allergies"`
	ReminderFrequencyDays int     `json:"reminder_frequency_days"`

	BMR                float64 `json:"bmr"`
	TDEE               float64 `json:"tdee"`
	DailyCalorieTarget float64 `json:"daily_calorie_target"`
	ProteinTargetG     int     `json:"protein_target_g"`
	CarbTargetG        int     `json:"carb_target_g"`
	FatTargetG         int     `json:"fat_target_g"`

	CreatedAt          time.Time  `json:"created_at"`
	LastWeightLoggedAt *time.Time `json:"last_weight_logged_at,omitempty"`
}

// WeightLog is a single weight measurement. Append-only.
type WeightLog struct {
	ID         uuid.UUID `json:"id"`
	WeightKg   float64   `json:"weight_kg"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Gender                *string  `json:"gender,omitempty"`
	Age                   *int     `json:"age,omitempty"`
	HeightCm              *float64 `json:"height_cm,omitempty"`
	WeightKg              *float64 `json:"weight_kg,omitempty"`
	BodyFatPct            *float64 `json:"body_fat_pct,omitempty"`
	ActivityLevel         *float64 `json:"activity_level,omitempty"`
	TargetWeightKg        *float64 `json:"target_weight_kg,omitempty"`
	TargetDate            *string  `json:"target_date,omitempty"`
	DietExerciseRatio     *int     `json:"diet_exercise_ratio,omitempty"`
	WeightLossSpeedKg     *float64 `json:"weight_loss_speed_kg,omitempty"`
	Allergies             *string  `json:"allergies,omitempty"`
	ReminderFrequencyDays *int     `json:"reminder_frequency_days,omitempty"`
}

// State is the snapshot form of the profile collection.
type State struct {
	Profile               *Profile    `json:"profile"`
	IsOnboardingComplete  bool        `json:"is_onboarding_complete"`
	HasActiveSubscription bool        `json:"has_active_subscription"`
	WeightLogs            []WeightLog `json:"weight_logs"`
}

// ProfileResponse — ответ для GET /v1/profile
type ProfileResponse struct {
	Profile               *Profile `json:"profile"`
	IsOnboardingComplete  bool     `json:"is_onboarding_complete"`
	HasActiveSubscription bool     `json:"has_active_subscription"`
}

// WeightLogRequest — запрос для POST /v1/weight-logs
type WeightLogRequest struct {
	WeightKg   float64  `json:"weight_kg"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// SubscriptionRequest — запрос для PUT /v1/profile/subscription
type SubscriptionRequest struct {
	Active bool `json:"active"`
}
