package reports

import (
	"fmt"
	"time"

	"github.com/slimtrack/slimtrack/internal/exerciselog"
	"github.com/slimtrack/slimtrack/internal/foodlog"
	"github.com/slimtrack/slimtrack/internal/profile"
)

// Errors
var (
	ErrInvalidFormat    = fmt.Errorf("invalid format")
	ErrInvalidDate      = fmt.Errorf("invalid date format")
	ErrInvalidDateRange = fmt.Errorf("from date must be before to date")
	ErrRangeTooLarge    = fmt.Errorf("date range too large")
)

const dateLayout = "2006-01-02"

// Service assembles progress reports from the active account's
// in-memory stores.
type Service struct {
	profiles  *profile.Store
	food      *foodlog.Store
	exercise  *exerciselog.Store
	generator *Generator

	maxRangeDays int
}

func NewService(profiles *profile.Store, food *foodlog.Store, exercise *exerciselog.Store, maxRangeDays int) *Service {
	return &Service{
		profiles:     profiles,
		food:         food,
		exercise:     exercise,
		generator:    NewGenerator(),
		maxRangeDays: maxRangeDays,
	}
}

// CreateProgressReport validates the request and renders the report,
// returning the bytes and content type.
func (s *Service) CreateProgressReport(req ProgressRequest) ([]byte, string, error) {
	if req.Format != FormatPDF && req.Format != FormatCSV {
		return nil, "", ErrInvalidFormat
	}

	fromDate, err := time.Parse(dateLayout, req.From)
	if err != nil {
		return nil, "", ErrInvalidDate
	}
	toDate, err := time.Parse(dateLayout, req.To)
	if err != nil {
		return nil, "", ErrInvalidDate
	}
	if fromDate.After(toDate) {
		return nil, "", ErrInvalidDateRange
	}

	daysDiff := int(toDate.Sub(fromDate).Hours() / 24)
	if daysDiff > s.maxRangeDays {
		return nil, "", ErrRangeTooLarge
	}

	data := s.buildData(fromDate, toDate)
	data.From = req.From
	data.To = req.To

	var out []byte
	contentType := "application/pdf"
	switch req.Format {
	case FormatPDF:
		out, err = s.generator.GeneratePDF(data)
	case FormatCSV:
		contentType = "text/csv"
		out, err = s.generator.GenerateCSV(data)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate report: %w", err)
	}

	return out, contentType, nil
}

func (s *Service) buildData(from, to time.Time) ProgressData {
	data := ProgressData{Days: []DayRow{}, Weights: []WeightRow{}}

	if p := s.profiles.Profile(); p != nil {
		data.Target = p.DailyCalorieTarget
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)

		foodSum := s.food.SummaryByDate(date)
		exSum := s.exercise.SummaryByDate(date)

		if foodSum.Entries == 0 && exSum.Entries == 0 {
			continue
		}

		data.Days = append(data.Days, DayRow{
			Date:        date,
			Consumed:    foodSum.Calories,
			Burned:      exSum.CaloriesBurned,
			Net:         foodSum.Calories - exSum.CaloriesBurned,
			Target:      data.Target,
			ProteinG:    foodSum.Macros.ProteinG,
			CarbsG:      foodSum.Macros.CarbsG,
			FatG:        foodSum.Macros.FatG,
			FoodEntries: foodSum.Entries,
			ExerciseMin: exSum.DurationMin,
		})
	}

	for _, wl := range s.profiles.WeightHistory() {
		date := wl.LoggedAt.UTC().Format(dateLayout)
		if date < from.Format(dateLayout) || date > to.Format(dateLayout) {
			continue
		}
		data.Weights = append(data.Weights, WeightRow{
			Date:       date,
			WeightKg:   wl.WeightKg,
			BodyFatPct: wl.BodyFatPct,
		})
	}

	return data
}
