package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/models"
	"backend/internal/store"
)

// ListOrders returns the newest-first order list, optionally filtered by
// status, in the {page, pageSize, total, items} envelope.
func ListOrders(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parsePositiveInt(c.Query("page"), 1)
		pageSize := parsePositiveInt(c.Query("pageSize"), 10)
		status := strings.ToUpper(strings.TrimSpace(c.Query("status")))

		var items []models.Order
		total := 0
		_ = st.View(func(db *models.Database) error {
			filtered := db.Orders
			if models.ValidStatus(status) {
				filtered = make([]models.Order, 0, len(db.Orders))
				for _, o := range db.Orders {
					if o.Status == status {
						filtered = append(filtered, o)
					}
				}
			}
			total = len(filtered)

			start := (page - 1) * pageSize
			if start > total {
				start = total
			}
			end := start + pageSize
			if end > total {
				end = total
			}
			items = append([]models.Order{}, filtered[start:end]...)
			return nil
		})

		c.JSON(http.StatusOK, gin.H{
			"page":     page,
			"pageSize": pageSize,
			"total":    total,
			"items":    items,
		})
	}
}

type updateOrderRequest struct {
	Status      *string `json:"status"`
	TableNumber *string `json:"tableNumber"`
	Note        *string `json:"note"`
}

// UpdateOrder applies a partial admin edit. Status may move between any of
// the four values; the admin console relies on being able to roll an order
// back.
func UpdateOrder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id"

		id := canonicalID(c.Param("id"))

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Status != nil && !models.ValidStatus(*req.Status) {
			respondWithError(c, http.StatusBadRequest, route, "Trạng thái không hợp lệ")
			return
		}

		var updated models.Order
		err := st.Update(func(db *models.Database) error {
			for i := range db.Orders {
				if canonicalID(db.Orders[i].ID) != id {
					continue
				}
				if req.Status != nil {
					db.Orders[i].Status = *req.Status
				}
				if req.TableNumber != nil {
					db.Orders[i].Meta.TableNumber = strings.TrimSpace(*req.TableNumber)
				}
				if req.Note != nil {
					db.Orders[i].Meta.Note = strings.TrimSpace(*req.Note)
				}
				now := time.Now()
				db.Orders[i].UpdatedAt = &now
				updated = db.Orders[i]
				return nil
			}
			return errOrderNotFound
		})

		switch {
		case errors.Is(err, errOrderNotFound):
			respondWithError(c, http.StatusNotFound, route, "Not found")
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
		default:
			logrus.WithFields(logrus.Fields{"orderId": updated.ID, "status": updated.Status}).Info("order updated")
			c.JSON(http.StatusOK, updated)
		}
	}
}

func DeleteOrder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id"

		id := canonicalID(c.Param("id"))

		removedID := ""
		err := st.Update(func(db *models.Database) error {
			for i := range db.Orders {
				if canonicalID(db.Orders[i].ID) == id {
					removedID = db.Orders[i].ID
					db.Orders = append(db.Orders[:i], db.Orders[i+1:]...)
					return nil
				}
			}
			return errOrderNotFound
		})

		switch {
		case errors.Is(err, errOrderNotFound):
			respondWithError(c, http.StatusNotFound, route, "Not found")
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
		default:
			c.JSON(http.StatusOK, gin.H{"ok": true, "removedId": removedID})
		}
	}
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
