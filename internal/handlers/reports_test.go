package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

func seedReportOrders(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("store open: %v", err)
	}

	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 12, 0, 0, 0, time.Local)
	}
	err = st.Update(func(db *models.Database) error {
		db.Orders = []models.Order{
			{ID: "A", Status: models.StatusCompleted, Total: 100000, CostTotal: 60000, Profit: 40000, CreatedAt: day(1)},
			{ID: "B", Status: models.StatusNew, Total: 50000, CostTotal: 30000, Profit: 20000, CreatedAt: day(1)},
			{ID: "C", Status: models.StatusCanceled, Total: 70000, CostTotal: 40000, Profit: 30000, CreatedAt: day(1)},
			{ID: "D", Status: models.StatusCompleted, Total: 20000, CostTotal: 10000, Profit: 10000, CreatedAt: day(2)},
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return st
}

func TestDailyReportExcludesCanceledOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := seedReportOrders(t)

	r := gin.New()
	r.GET("/api/reports/daily", DailyReport(st))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/daily", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []struct {
			Date    string  `json:"date"`
			Revenue float64 `json:"revenue"`
			Profit  float64 `json:"profit"`
			Orders  int     `json:"orders"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 days, got %+v", resp.Items)
	}
	first := resp.Items[0]
	if first.Date != "2025-03-01" || first.Revenue != 150000 || first.Profit != 60000 || first.Orders != 2 {
		t.Fatalf("canceled order leaked into daily report: %+v", first)
	}
}

func TestDailyReportRespectsRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := seedReportOrders(t)

	r := gin.New()
	r.GET("/api/reports/daily", DailyReport(st))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/daily?from=2025-03-02&to=2025-03-02", nil))

	var resp struct {
		Items []struct {
			Date string `json:"date"`
		} `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 1 || resp.Items[0].Date != "2025-03-02" {
		t.Fatalf("unexpected range result %+v", resp.Items)
	}
}

func TestMonthlyReportReturnsTwelveBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := seedReportOrders(t)

	r := gin.New()
	r.GET("/api/reports/monthly", MonthlyReport(st))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/monthly?year=2025", nil))

	var resp struct {
		Year  int `json:"year"`
		Items []struct {
			Month   int     `json:"month"`
			Revenue float64 `json:"revenue"`
			Orders  int     `json:"orders"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Year != 2025 || len(resp.Items) != 12 {
		t.Fatalf("expected 12 buckets for 2025, got %+v", resp)
	}
	march := resp.Items[2]
	if march.Month != 3 || march.Revenue != 170000 || march.Orders != 3 {
		t.Fatalf("unexpected march bucket %+v", march)
	}
	if resp.Items[0].Orders != 0 {
		t.Fatalf("expected empty january, got %+v", resp.Items[0])
	}
}

func TestYearlyReportSortsYears(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := seedReportOrders(t)
	_ = st.Update(func(db *models.Database) error {
		db.Orders = append(db.Orders, models.Order{
			ID: "OLD", Status: models.StatusCompleted, Total: 5000,
			CreatedAt: time.Date(2024, 12, 31, 23, 0, 0, 0, time.Local),
		})
		return nil
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/reports/yearly", YearlyReport(st))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/yearly", nil))

	var resp struct {
		Items []struct {
			Year    int     `json:"year"`
			Revenue float64 `json:"revenue"`
		} `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 2 || resp.Items[0].Year != 2024 || resp.Items[1].Year != 2025 {
		t.Fatalf("expected sorted years, got %+v", resp.Items)
	}
}
