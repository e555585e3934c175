package reports

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/slimtrack/slimtrack/internal/exerciselog"
	"github.com/slimtrack/slimtrack/internal/foodlog"
	"github.com/slimtrack/slimtrack/internal/profile"
)

func seededService(t *testing.T) *Service {
	t.Helper()

	profiles := profile.NewStore()
	profiles.SetProfile(profile.Profile{
		Gender: "female", Age: 30, HeightCm: 165, WeightKg: 65,
		ActivityLevel: 1.375, WeightLossSpeedKg: 0.5,
	})

	food := foodlog.NewStore()
	exercise := exerciselog.NewStore()

	day := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	food.Add(foodlog.Entry{
		FoodName: "Rice", Calories: 280, ProteinG: 5, CarbsG: 62, FatG: 0.6,
		MealSlot: foodlog.MealLunch, Source: foodlog.SourceSearch, LoggedAt: day,
	})
	food.Add(foodlog.Entry{
		FoodName: "Chicken", Calories: 330, ProteinG: 62, CarbsG: 0, FatG: 7,
		MealSlot: foodlog.MealDinner, Source: foodlog.SourceSearch, LoggedAt: day,
	})
	exercise.Add(exerciselog.Entry{
		Name: "Run", DurationMin: 30, CaloriesBurned: 300,
		Source: exerciselog.SourceManual, LoggedAt: day,
	})

	return NewService(profiles, food, exercise, 90)
}

func TestProgressCSV(t *testing.T) {
	svc := seededService(t)

	data, contentType, err := svc.CreateProgressReport(ProgressRequest{
		From: "2026-04-01", To: "2026-04-30", Format: FormatCSV,
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if contentType != "text/csv" {
		t.Fatalf("content type = %q", contentType)
	}

	body := string(data)
	if !strings.Contains(body, "2026-04-10,610,300,310,1334") {
		t.Fatalf("day row missing, got:\n%s", body)
	}
	if !strings.HasPrefix(body, "date,calories_consumed,calories_burned,net_calories") {
		t.Fatalf("header missing, got:\n%s", body)
	}
}

func TestProgressKeepsFractionalBurnedCalories(t *testing.T) {
	profiles := profile.NewStore()
	food := foodlog.NewStore()
	exercise := exerciselog.NewStore()

	day := time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC)
	food.Add(foodlog.Entry{
		FoodName: "Oats", Calories: 350, MealSlot: foodlog.MealBreakfast,
		Source: foodlog.SourceSearch, LoggedAt: day,
	})
	exercise.Add(exerciselog.Entry{
		Name: "Walk", DurationMin: 40, CaloriesBurned: 148.4,
		Source: exerciselog.SourceHealthKit, LoggedAt: day,
	})

	svc := NewService(profiles, food, exercise, 90)
	data := svc.buildData(
		time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
	)
	if len(data.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(data.Days))
	}
	if data.Days[0].Burned != 148.4 {
		t.Fatalf("burned = %v, want 148.4", data.Days[0].Burned)
	}
	if data.Days[0].Net != 350-148.4 {
		t.Fatalf("net = %v, want %v", data.Days[0].Net, 350-148.4)
	}

	csvOut, err := NewGenerator().GenerateCSV(data)
	if err != nil {
		t.Fatalf("generate csv: %v", err)
	}
	if !strings.Contains(string(csvOut), "2026-04-12,350,148,202") {
		t.Fatalf("day row missing, got:\n%s", csvOut)
	}
}

func TestProgressPDF(t *testing.T) {
	svc := seededService(t)

	data, contentType, err := svc.CreateProgressReport(ProgressRequest{
		From: "2026-04-01", To: "2026-04-30", Format: FormatPDF,
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if contentType != "application/pdf" {
		t.Fatalf("content type = %q", contentType)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestProgressValidation(t *testing.T) {
	svc := seededService(t)

	cases := []struct {
		name string
		req  ProgressRequest
		want error
	}{
		{"bad format", ProgressRequest{From: "2026-04-01", To: "2026-04-02", Format: "xlsx"}, ErrInvalidFormat},
		{"bad date", ProgressRequest{From: "01.04.2026", To: "2026-04-02", Format: FormatCSV}, ErrInvalidDate},
		{"inverted range", ProgressRequest{From: "2026-04-10", To: "2026-04-01", Format: FormatCSV}, ErrInvalidDateRange},
		{"too wide", ProgressRequest{From: "2025-01-01", To: "2026-04-01", Format: FormatCSV}, ErrRangeTooLarge},
	}

	for _, tc := range cases {
		if _, _, err := svc.CreateProgressReport(tc.req); err != tc.want {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestHandleProgressBadRequest(t *testing.T) {
	h := NewHandlers(seededService(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/progress?from=bad&to=2026-04-01&format=csv", nil)
	h.HandleProgress(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleProgressDownload(t *testing.T) {
	h := NewHandlers(seededService(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/progress?from=2026-04-01&to=2026-04-30&format=csv", nil)
	h.HandleProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "progress_2026-04-01_2026-04-30.csv") {
		t.Fatalf("content disposition = %q", got)
	}
}
