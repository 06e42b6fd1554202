package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/notify"
)

// heartbeatInterval defeats idle-connection timeouts on proxies between the
// admin browser and the server.
const heartbeatInterval = 25 * time.Second

// StreamOrders is the admin live event stream. The connection stays open
// until the client goes away; each new order arrives as a "message" event
// and a "ping" heartbeat is sent on a fixed interval.
func StreamOrders(hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		ch := hub.Subscribe()
		defer hub.Unsubscribe(ch)

		logrus.WithField("clients", hub.ClientCount()).Info("stream client connected")

		c.SSEvent("ping", time.Now().UnixMilli())
		c.Writer.Flush()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		done := c.Request.Context().Done()
		for {
			select {
			case <-done:
				logrus.Info("stream client disconnected")
				return
			case ev := <-ch:
				c.SSEvent(ev.Name, ev.Data)
				c.Writer.Flush()
			case <-ticker.C:
				c.SSEvent("ping", time.Now().UnixMilli())
				c.Writer.Flush()
			}
		}
	}
}
