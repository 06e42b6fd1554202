package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

// GetProducts lists the public menu: active products only.
func GetProducts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}
		_ = st.View(func(db *models.Database) error {
			for _, p := range db.Products {
				if p.Active {
					products = append(products, p)
				}
			}
			return nil
		})
		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := canonicalID(c.Param("id"))

		var product models.Product
		found := false
		_ = st.View(func(db *models.Database) error {
			for _, p := range db.Products {
				if canonicalID(p.ID) == id {
					product = p
					found = true
					break
				}
			}
			return nil
		})

		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
