package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

func newSettingsTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("store open: %v", err)
	}

	r := gin.New()
	r.GET("/api/settings", GetSettings(st))
	r.PUT("/api/settings", UpdateSettings(st))
	r.GET("/api/config", GetConfig(st))
	return r, st
}

func TestUpdateSettingsClampsPercent(t *testing.T) {
	r, st := newSettingsTestRouter(t)

	w := doJSON(t, r, "PUT", "/api/settings", `{"promo":{"enabled":true,"percent":150}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	_ = st.View(func(db *models.Database) error {
		if db.Settings.Promo.Percent != 100 || !db.Settings.Promo.Enabled {
			t.Fatalf("expected percent clamped to 100, got %+v", db.Settings.Promo)
		}
		return nil
	})

	w = doJSON(t, r, "PUT", "/api/settings", `{"promo":{"enabled":true,"percent":-10}}`)
	_ = st.View(func(db *models.Database) error {
		if db.Settings.Promo.Percent != 0 {
			t.Fatalf("expected percent clamped to 0, got %v", db.Settings.Promo.Percent)
		}
		return nil
	})
}

func TestGetConfigReportsPromoState(t *testing.T) {
	r, st := newSettingsTestRouter(t)
	_ = st.Update(func(db *models.Database) error {
		db.Settings.Promo = models.PromoConfig{Enabled: true, Percent: 10}
		return nil
	})

	w := doJSON(t, r, "GET", "/api/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Promo       models.PromoConfig `json:"promo"`
		PromoActive bool               `json:"promoActive"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.PromoActive || resp.Promo.Percent != 10 {
		t.Fatalf("unexpected config %+v", resp)
	}
}
