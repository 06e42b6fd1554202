package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/store"
)

func GetSettings(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.Settings
		_ = st.View(func(db *models.Database) error {
			settings = db.Settings
			return nil
		})
		c.JSON(http.StatusOK, settings)
	}
}

type updateSettingsRequest struct {
	Promo *models.PromoConfig `json:"promo"`
}

// UpdateSettings replaces the promotion configuration. Percent is clamped to
// 0..100; the window bounds are stored as received.
func UpdateSettings(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/settings"

		var req updateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		var settings models.Settings
		err := st.Update(func(db *models.Database) error {
			if req.Promo != nil {
				promo := *req.Promo
				if promo.Percent < 0 {
					promo.Percent = 0
				}
				if promo.Percent > 100 {
					promo.Percent = 100
				}
				db.Settings.Promo = promo
			}
			settings = db.Settings
			return nil
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

// GetConfig is the public storefront bootstrap: bank transfer details, the
// current promotion, and the fixed QR image.
func GetConfig(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promo models.PromoConfig
		_ = st.View(func(db *models.Database) error {
			promo = db.Settings.Promo
			return nil
		})

		c.JSON(http.StatusOK, gin.H{
			"bankName":          config.AppEnv.BankName,
			"bankAccountName":   config.AppEnv.BankAccountName,
			"bankAccountNumber": config.AppEnv.BankAccountNumber,
			"promo":             promo,
			"promoActive":       promoActiveAt(promo, time.Now()),
			"qrFixedImage":      config.AppEnv.QRImage,
		})
	}
}
