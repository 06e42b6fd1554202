package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/models"
	"backend/internal/store"
)

var errProductNotFound = errors.New("product not found")

type createProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category"`
	PriceSell   *float64 `json:"priceSell" binding:"required"`
	PriceCost   *float64 `json:"priceCost" binding:"required"`
	Unit        string   `json:"unit"`
	Active      *bool    `json:"active"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Sauce       string   `json:"nuocCham"`
	Pickles     string   `json:"doChua"`
	Note        string   `json:"ghiChu"`
}

func GetAllProducts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		_ = st.View(func(db *models.Database) error {
			products = append([]models.Product{}, db.Products...)
			return nil
		})
		c.JSON(http.StatusOK, products)
	}
}

func CreateProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Thiếu trường bắt buộc")
			return
		}
		if *req.PriceSell < 0 || *req.PriceCost < 0 {
			respondWithError(c, http.StatusBadRequest, route, "Giá không hợp lệ")
			return
		}

		product := models.Product{
			ID:          newToken(10),
			Name:        strings.TrimSpace(req.Name),
			Category:    defaultString(req.Category, "Khác"),
			PriceSell:   *req.PriceSell,
			PriceCost:   *req.PriceCost,
			Unit:        defaultString(req.Unit, "phần"),
			Active:      req.Active == nil || *req.Active,
			ImageURL:    strings.TrimSpace(req.ImageURL),
			Description: strings.TrimSpace(req.Description),
			Sauce:       strings.TrimSpace(req.Sauce),
			Pickles:     strings.TrimSpace(req.Pickles),
			Note:        strings.TrimSpace(req.Note),
			CreatedAt:   time.Now(),
		}

		err := st.Update(func(db *models.Database) error {
			db.Products = append(db.Products, product)
			return nil
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		logrus.WithFields(logrus.Fields{"productId": product.ID, "name": product.Name}).Info("product created")
		c.JSON(http.StatusOK, product)
	}
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	PriceSell   *float64 `json:"priceSell"`
	PriceCost   *float64 `json:"priceCost"`
	Unit        *string  `json:"unit"`
	Active      *bool    `json:"active"`
	ImageURL    *string  `json:"imageUrl"`
	Description *string  `json:"description"`
	Sauce       *string  `json:"nuocCham"`
	Pickles     *string  `json:"doChua"`
	Note        *string  `json:"ghiChu"`
}

func UpdateProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"

		id := canonicalID(c.Param("id"))

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if (req.PriceSell != nil && *req.PriceSell < 0) || (req.PriceCost != nil && *req.PriceCost < 0) {
			respondWithError(c, http.StatusBadRequest, route, "Giá không hợp lệ")
			return
		}

		var updated models.Product
		err := st.Update(func(db *models.Database) error {
			for i := range db.Products {
				if canonicalID(db.Products[i].ID) != id {
					continue
				}
				applyProductUpdate(&db.Products[i], req)
				now := time.Now()
				db.Products[i].UpdatedAt = &now
				updated = db.Products[i]
				return nil
			}
			return errProductNotFound
		})

		switch {
		case errors.Is(err, errProductNotFound):
			respondWithError(c, http.StatusNotFound, route, "Not found")
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
		default:
			c.JSON(http.StatusOK, updated)
		}
	}
}

func applyProductUpdate(p *models.Product, req updateProductRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.PriceSell != nil {
		p.PriceSell = *req.PriceSell
	}
	if req.PriceCost != nil {
		p.PriceCost = *req.PriceCost
	}
	if req.Unit != nil {
		p.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Sauce != nil {
		p.Sauce = strings.TrimSpace(*req.Sauce)
	}
	if req.Pickles != nil {
		p.Pickles = strings.TrimSpace(*req.Pickles)
	}
	if req.Note != nil {
		p.Note = strings.TrimSpace(*req.Note)
	}
}

// DeleteProduct removes the catalog entry and its uploaded image, if any.
// Orders keep their own price/name snapshots, so history is unaffected.
func DeleteProduct(st *store.Store, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"

		id := canonicalID(c.Param("id"))

		var removed models.Product
		err := st.Update(func(db *models.Database) error {
			for i := range db.Products {
				if canonicalID(db.Products[i].ID) == id {
					removed = db.Products[i]
					db.Products = append(db.Products[:i], db.Products[i+1:]...)
					return nil
				}
			}
			return errProductNotFound
		})

		switch {
		case errors.Is(err, errProductNotFound):
			respondWithError(c, http.StatusNotFound, route, "Not found")
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
		default:
			if err := safeDeleteUpload(uploadDir, removed.ImageURL); err != nil {
				logrus.WithError(err).WithField("productId", removed.ID).Warn("orphan image not removed")
			}
			c.JSON(http.StatusOK, removed)
		}
	}
}

func defaultString(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}
