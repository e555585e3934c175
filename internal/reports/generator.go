package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders progress reports as PDF or CSV.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateCSV renders one row per day plus a weight section.
func (g *Generator) GenerateCSV(data ProgressData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "calories_consumed", "calories_burned", "net_calories", "daily_target", "protein_g", "carbs_g", "fat_g", "food_entries", "exercise_minutes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, day := range data.Days {
		row := []string{
			day.Date,
			fmt.Sprintf("%.0f", day.Consumed),
			fmt.Sprintf("%.0f", day.Burned),
			fmt.Sprintf("%.0f", day.Net),
			fmt.Sprintf("%.0f", day.Target),
			fmt.Sprintf("%.1f", day.ProteinG),
			fmt.Sprintf("%.1f", day.CarbsG),
			fmt.Sprintf("%.1f", day.FatG),
			strconv.Itoa(day.FoodEntries),
			strconv.Itoa(day.ExerciseMin),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if len(data.Weights) > 0 {
		if err := w.Write([]string{}); err != nil {
			return nil, err
		}
		if err := w.Write([]string{"date", "weight_kg", "body_fat_pct"}); err != nil {
			return nil, err
		}
		for _, wr := range data.Weights {
			bodyFat := ""
			if wr.BodyFatPct != nil {
				bodyFat = fmt.Sprintf("%.1f", *wr.BodyFatPct)
			}
			if err := w.Write([]string{wr.Date, fmt.Sprintf("%.1f", wr.WeightKg), bodyFat}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GeneratePDF renders the same data as an A4 report with a summary,
// a daily table and a weight section. Core fonts only.
func (g *Generator) GeneratePDF(data ProgressData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "Progress Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", data.From, data.To))
	pdf.Ln(12)

	g.drawSummary(pdf, data)
	g.drawDailyTable(pdf, data.Days)
	g.drawWeightSection(pdf, data.Weights)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) drawSummary(pdf *gofpdf.Fpdf, data ProgressData) {
	var totalConsumed, totalBurned, totalNet float64
	var daysOverTarget int

	for _, day := range data.Days {
		totalConsumed += day.Consumed
		totalBurned += day.Burned
		totalNet += day.Net
		if day.Target > 0 && day.Consumed > day.Target {
			daysOverTarget++
		}
	}

	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Days with data: %d", len(data.Days)))
	pdf.Ln(5)

	if len(data.Days) > 0 {
		avgConsumed := totalConsumed / float64(len(data.Days))
		pdf.Cell(0, 6, fmt.Sprintf("Average calories consumed: %.0f", avgConsumed))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Total calories burned: %.0f", totalBurned))
		pdf.Ln(5)
		if data.Target > 0 {
			pdf.Cell(0, 6, fmt.Sprintf("Daily target: %.0f (over on %d of %d days)", data.Target, daysOverTarget, len(data.Days)))
			pdf.Ln(5)
		}
	}

	if len(data.Weights) > 1 {
		delta := data.Weights[0].WeightKg - data.Weights[len(data.Weights)-1].WeightKg
		pdf.Cell(0, 6, fmt.Sprintf("Weight change: %+.1f kg", delta))
		pdf.Ln(5)
	}
	pdf.Ln(7)
}

func (g *Generator) drawDailyTable(pdf *gofpdf.Fpdf, days []DayRow) {
	if len(days) == 0 {
		return
	}

	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Daily Breakdown")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(24, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "Consumed", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 6, "Burned", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 6, "Net", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 6, "Target", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Protein g", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Carbs g", "1", 0, "C", false, 0, "")
	pdf.CellFormat(16, 6, "Fat g", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Exercise m", "1", 1, "C", false, 0, "")

	for _, day := range days {
		pdf.CellFormat(24, 6, day.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.0f", day.Consumed), "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%.0f", day.Burned), "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%.0f", day.Net), "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%.0f", day.Target), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", day.ProteinG), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", day.CarbsG), "1", 0, "C", false, 0, "")
		pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", day.FatG), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, strconv.Itoa(day.ExerciseMin), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(7)
}

func (g *Generator) drawWeightSection(pdf *gofpdf.Fpdf, weights []WeightRow) {
	if len(weights) == 0 {
		return
	}

	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Weight Log")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Weight kg", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Body fat %", "1", 1, "C", false, 0, "")

	for _, wr := range weights {
		bodyFat := "-"
		if wr.BodyFatPct != nil {
			bodyFat = fmt.Sprintf("%.1f", *wr.BodyFatPct)
		}
		pdf.CellFormat(30, 6, wr.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", wr.WeightKg), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, bodyFat, "1", 1, "C", false, 0, "")
	}
}
