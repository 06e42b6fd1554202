package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

type reportBucket struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
	Orders  int     `json:"orders"`
}

func (b *reportBucket) add(o models.Order) {
	b.Revenue += o.Total
	b.Cost += o.CostTotal
	b.Profit += o.Profit
	b.Orders++
}

// DailyReport aggregates per calendar day, optionally bounded by
// from/to (YYYY-MM-DD, inclusive). Canceled orders are excluded.
func DailyReport(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := c.Query("from")
		to := c.Query("to")

		buckets := map[string]*reportBucket{}
		_ = st.View(func(db *models.Database) error {
			for _, o := range db.Orders {
				if o.Status == models.StatusCanceled {
					continue
				}
				day := o.CreatedAt.Local().Format("2006-01-02")
				if from != "" && day < from {
					continue
				}
				if to != "" && day > to {
					continue
				}
				b, ok := buckets[day]
				if !ok {
					b = &reportBucket{}
					buckets[day] = b
				}
				b.add(o)
			}
			return nil
		})

		days := make([]string, 0, len(buckets))
		for day := range buckets {
			days = append(days, day)
		}
		sort.Strings(days)

		items := make([]gin.H, 0, len(days))
		for _, day := range days {
			b := buckets[day]
			items = append(items, gin.H{
				"date": day, "revenue": b.Revenue, "cost": b.Cost, "profit": b.Profit, "orders": b.Orders,
			})
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// MonthlyReport returns twelve buckets for the requested year (default: the
// current year).
func MonthlyReport(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		year := time.Now().Year()
		if raw := c.Query("year"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				year = parsed
			}
		}

		sums := make([]reportBucket, 12)
		_ = st.View(func(db *models.Database) error {
			for _, o := range db.Orders {
				if o.Status == models.StatusCanceled {
					continue
				}
				created := o.CreatedAt.Local()
				if created.Year() != year {
					continue
				}
				sums[int(created.Month())-1].add(o)
			}
			return nil
		})

		items := make([]gin.H, 0, 12)
		for i, b := range sums {
			items = append(items, gin.H{
				"month": i + 1, "revenue": b.Revenue, "cost": b.Cost, "profit": b.Profit, "orders": b.Orders,
			})
		}
		c.JSON(http.StatusOK, gin.H{"year": year, "items": items})
	}
}

func YearlyReport(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		buckets := map[int]*reportBucket{}
		_ = st.View(func(db *models.Database) error {
			for _, o := range db.Orders {
				if o.Status == models.StatusCanceled {
					continue
				}
				year := o.CreatedAt.Local().Year()
				b, ok := buckets[year]
				if !ok {
					b = &reportBucket{}
					buckets[year] = b
				}
				b.add(o)
			}
			return nil
		})

		years := make([]int, 0, len(buckets))
		for year := range buckets {
			years = append(years, year)
		}
		sort.Ints(years)

		items := make([]gin.H, 0, len(years))
		for _, year := range years {
			b := buckets[year]
			items = append(items, gin.H{
				"year": year, "revenue": b.Revenue, "cost": b.Cost, "profit": b.Profit, "orders": b.Orders,
			})
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
