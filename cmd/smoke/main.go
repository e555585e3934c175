package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase    string
	token      string
	client     = &http.Client{Timeout: 30 * time.Second}
	testDate   string
	createdIDs = make(map[string]string) // track created resources for cleanup
)

func main() {
	fmt.Println("=== SlimTrack E2E Smoke Test ===")
	fmt.Println()

	// Load config from env
	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	// Test date (today)
	testDate = time.Now().UTC().Format("2006-01-02")

	// Run smoke tests
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Put Profile", testPutProfile},
		{"Get Profile", testGetProfile},
		{"Add Weight Log", testAddWeightLog},
		{"Create Food Log", testCreateFoodLog},
		{"Food Day Summary", testFoodSummary},
		{"Create Exercise Log", testCreateExerciseLog},
		{"Exercise Day Summary", testExerciseSummary},
		{"List Equivalents", testListEquivalents},
		{"Progress Report (CSV)", testProgressReportCSV},
		{"List Accounts", testListAccounts},
		{"Delete Food Log", testDeleteFoodLog},
		{"Delete Exercise Log", testDeleteExerciseLog},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := doGet("/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testPutProfile() error {
	payload := map[string]interface{}{
		"gender":               "female",
		"age":                  30,
		"height_cm":            165,
		"weight_kg":            65,
		"activity_level":       1.375,
		"weight_loss_speed_kg": 0.5,
	}

	resp, err := doJSON("PUT", "/v1/profile", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testGetProfile() error {
	resp, err := doGet("/v1/profile")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Profile *struct {
			BMR                float64 `json:"bmr"`
			DailyCalorieTarget float64 `json:"daily_calorie_target"`
		} `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Profile == nil {
		return fmt.Errorf("profile missing after PUT")
	}
	if result.Profile.BMR <= 0 {
		return fmt.Errorf("bmr not derived: %v", result.Profile.BMR)
	}
	return nil
}

func testAddWeightLog() error {
	resp, err := doJSON("POST", "/v1/weight-logs", map[string]interface{}{
		"weight_kg": 64.6,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusCreated)
}

func testCreateFoodLog() error {
	resp, err := doJSON("POST", "/v1/food-logs", map[string]interface{}{
		"food_name": "White Rice",
		"calories":  280,
		"protein_g": 4.4,
		"carbs_g":   62,
		"fat_g":     0.6,
		"meal_slot": "lunch",
		"source":    "search",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var entry struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if entry.ID == "" {
		return fmt.Errorf("no id in response")
	}
	createdIDs["food"] = entry.ID
	return nil
}

func testFoodSummary() error {
	resp, err := doGet("/v1/food-logs/summary?date=" + testDate)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var sum struct {
		Calories float64 `json:"calories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if sum.Calories < 280 {
		return fmt.Errorf("summary calories = %v, want >= 280", sum.Calories)
	}
	return nil
}

func testCreateExerciseLog() error {
	resp, err := doJSON("POST", "/v1/exercise-logs", map[string]interface{}{
		"name":            "Running",
		"type":            "cardio",
		"duration_min":    30,
		"calories_burned": 320,
		"source":          "manual",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var entry struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	createdIDs["exercise"] = entry.ID
	return nil
}

func testExerciseSummary() error {
	resp, err := doGet("/v1/exercise-logs/summary?date=" + testDate)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testListEquivalents() error {
	resp, err := doGet("/v1/food-logs/equivalents")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.Items) == 0 {
		return fmt.Errorf("no reference equivalents seeded")
	}
	return nil
}

func testProgressReportCSV() error {
	from := time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")
	resp, err := doGet(fmt.Sprintf("/v1/reports/progress?from=%s&to=%s&format=csv", from, testDate))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) < 10 {
		return fmt.Errorf("report too small: %d bytes", len(data))
	}
	return nil
}

func testListAccounts() error {
	resp, err := doGet("/v1/accounts")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testDeleteFoodLog() error {
	id := createdIDs["food"]
	if id == "" {
		return fmt.Errorf("no food log ID to delete")
	}

	resp, err := doDelete("/v1/food-logs/" + id)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusNoContent)
}

func testDeleteExerciseLog() error {
	id := createdIDs["exercise"]
	if id == "" {
		return fmt.Errorf("no exercise log ID to delete")
	}

	resp, err := doDelete("/v1/exercise-logs/" + id)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusNoContent)
}

// Helper functions

func doGet(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", apiBase+path, nil)
	if err != nil {
		return nil, err
	}
	addAuth(req)
	return client.Do(req)
}

func doDelete(path string) (*http.Response, error) {
	req, err := http.NewRequest("DELETE", apiBase+path, nil)
	if err != nil {
		return nil, err
	}
	addAuth(req)
	return client.Do(req)
}

func doJSON(method, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, apiBase+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req)
	return client.Do(req)
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
