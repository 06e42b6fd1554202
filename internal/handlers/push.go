package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/notify"
)

func PushPublicKey(pusher *notify.Pusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"publicKey": pusher.PublicKey()})
	}
}

type pushSubscribeRequest struct {
	Endpoint string          `json:"endpoint" binding:"required"`
	Keys     models.PushKeys `json:"keys"`
}

func PushSubscribe(pusher *notify.Pusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/push/subscribe"

		var req pushSubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid subscription")
			return
		}

		err := pusher.Subscribe(models.PushSubscription{
			Endpoint: strings.TrimSpace(req.Endpoint),
			Keys:     req.Keys,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

type pushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func PushUnsubscribe(pusher *notify.Pusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/push/unsubscribe"

		var req pushUnsubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		if err := pusher.Unsubscribe(strings.TrimSpace(req.Endpoint)); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// PushTest lets the admin verify their browser subscription end to end.
func PushTest(pusher *notify.Pusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		pusher.SendToAll("test", notify.Notification{
			Title: "🔔 Test thông báo",
			Body:  "Bạn vừa bật Web Push thành công!",
			Data:  map[string]string{},
		})
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
