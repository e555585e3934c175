// Package metabolic computes derived energy and macro targets from raw
// profile inputs. All functions are pure; callers persist the results.
package metabolic

import "math"

const (
	// KcalPerKgFat is the energy content of one kilogram of body fat.
	KcalPerKgFat = 7700

	// MinDailyCalories is the floor applied to the daily calorie target.
	MinDailyCalories = 1200

	proteinGramsPerKg = 1.8
	fatCalorieShare   = 0.275

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Inputs are the raw profile fields the derivation depends on.
type Inputs struct {
	Gender            string
	WeightKg          float64
	HeightCm          float64
	AgeYears          int
	ActivityLevel     float64 // 1.2, 1.375, 1.55, 1.725, 1.9
	WeightLossSpeedKg float64 // kg per week, typically 0.25-1.0
}

// Derived holds the five computed profile fields.
type Derived struct {
	BMR                float64
	TDEE               float64
	DailyCalorieTarget float64
	ProteinTargetG     int
	CarbTargetG        int
	FatTargetG         int
}

// BMR computes basal metabolic rate via the Mifflin-St Jeor equation.
// Inputs are assumed positive; validation is the caller's job.
func BMR(gender string, weightKg, heightCm float64, ageYears int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// TDEE scales BMR by the activity multiplier.
func TDEE(bmr, activityLevel float64) float64 {
	return bmr * activityLevel
}

// DailyCalorieTarget subtracts the daily deficit implied by the weight-loss
// speed from TDEE, clamped to MinDailyCalories.
func DailyCalorieTarget(tdee, lossKgPerWeek float64) float64 {
	dailyDeficit := lossKgPerWeek * KcalPerKgFat / 7
	return math.Max(MinDailyCalories, tdee-dailyDeficit)
}

// MacroTargets splits a daily calorie budget into protein, carb and fat
// gram targets. Protein is weight-based, fat is a fixed calorie share, carbs
// take the remainder. Grams are rounded to the nearest integer.
func MacroTargets(weightKg, dailyCalories float64) (proteinG, carbG, fatG int) {
	protein := weightKg * proteinGramsPerKg
	fatCalories := dailyCalories * fatCalorieShare
	fat := fatCalories / kcalPerGramFat

	proteinCalories := protein * kcalPerGramProtein
	remaining := dailyCalories - proteinCalories - fatCalories
	carbs := remaining / kcalPerGramCarbs

	return int(math.Round(protein)), int(math.Round(carbs)), int(math.Round(fat))
}

// Derive computes all five derived fields in one pass.
func Derive(in Inputs) Derived {
	bmr := BMR(in.Gender, in.WeightKg, in.HeightCm, in.AgeYears)
	tdee := TDEE(bmr, in.ActivityLevel)
	target := DailyCalorieTarget(tdee, in.WeightLossSpeedKg)
	protein, carbs, fat := MacroTargets(in.WeightKg, target)

	return Derived{
		BMR:                bmr,
		TDEE:               tdee,
		DailyCalorieTarget: target,
		ProteinTargetG:     protein,
		CarbTargetG:        carbs,
		FatTargetG:         fat,
	}
}
