package reports

// Report formats
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// ProgressRequest — параметры для GET /v1/reports/progress.
type ProgressRequest struct {
	From   string
	To     string
	Format string
}

// DayRow is one aggregated day inside a progress report.
type DayRow struct {
	Date        string
	Consumed    float64
	Burned      float64
	Net         float64
	Target      float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	FoodEntries int
	ExerciseMin int
}

// WeightRow is one weight measurement inside the report's weight
// section.
type WeightRow struct {
	Date       string
	WeightKg   float64
	BodyFatPct *float64
}

// ProgressData is the assembled input for the generator.
type ProgressData struct {
	From    string
	To      string
	Target  float64
	Days    []DayRow
	Weights []WeightRow
}
