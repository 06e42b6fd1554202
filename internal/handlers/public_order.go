package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/models"
	"backend/internal/notify"
	"backend/internal/store"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty"`
}

type createOrderCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

type createOrderMetaRequest struct {
	OrderType   string  `json:"orderType"`
	TableNumber string  `json:"tableNumber"`
	Guests      int     `json:"guests"`
	ScheduleAt  *string `json:"scheduleAt"`
	Note        string  `json:"note"`
}

type createOrderRequest struct {
	Customer      createOrderCustomerRequest `json:"customer" binding:"required"`
	Items         []createOrderItemRequest   `json:"items" binding:"required,min=1"`
	PaymentMethod string                     `json:"paymentMethod"`
	Meta          *createOrderMetaRequest    `json:"meta"`
}

var (
	errOrderNotFound = errors.New("order not found")
	errPhoneMismatch = errors.New("phone tail mismatch")
	errNotCancelable = errors.New("order cannot be canceled")
	errInvalidType   = errors.New("orderType không hợp lệ")
	errReserveNoTime = errors.New("RESERVE cần thời gian đến (scheduleAt)")
)

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(st *store.Store, hub *notify.Hub, pusher *notify.Pusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Thiếu thông tin đơn hàng")
			return
		}

		meta, err := buildOrderMeta(req.Meta)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var order models.Order
		err = st.Update(func(db *models.Database) error {
			priced, err := priceOrderItems(db.Products, req.Items)
			if err != nil {
				return err
			}

			now := time.Now()
			promo := db.Settings.Promo
			active := promoActiveAt(promo, now)

			discount := 0.0
			if active {
				discount = promoDiscount(priced.Subtotal, promo.Percent)
			}
			total := priced.Subtotal - discount
			if total < 0 {
				total = 0
			}

			order = models.Order{
				ID:     newToken(12),
				Status: models.StatusNew,
				Customer: models.OrderCustomer{
					Name:    strings.TrimSpace(req.Customer.Name),
					Phone:   strings.TrimSpace(req.Customer.Phone),
					Address: strings.TrimSpace(req.Customer.Address),
				},
				PaymentMethod: normalizePaymentMethod(req.PaymentMethod),
				Items:         priced.Items,
				Subtotal:      priced.Subtotal,
				Discount:      discount,
				Total:         total,
				CostTotal:     priced.CostTotal,
				Profit:        total - priced.CostTotal,
				PromoSnapshot: models.PromoSnapshot{Active: active, Percent: promo.Percent},
				Meta:          meta,
				CreatedAt:     now,
			}

			// newest first, like the admin console expects
			db.Orders = append([]models.Order{order}, db.Orders...)
			return nil
		})
		if err != nil {
			var notFound unknownProductError
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusBadRequest, route, notFound.Error())
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Fan-out runs detached: the customer's response never waits on, or
		// fails because of, admin notification delivery.
		go dispatchOrderNotifications(hub, pusher, order)

		logrus.WithFields(logrus.Fields{"orderId": order.ID, "total": order.Total}).Info("order created")

		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"orderId":  order.ID,
			"total":    order.Total,
			"discount": order.Discount,
			"subtotal": order.Subtotal,
		})
	}
}

func buildOrderMeta(req *createOrderMetaRequest) (models.OrderMeta, error) {
	meta := models.OrderMeta{OrderType: models.OrderTypeTakeaway}
	if req == nil {
		return meta, nil
	}

	orderType := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(req.OrderType)), "-", "_")
	if orderType == "" {
		orderType = models.OrderTypeTakeaway
	}
	// legacy spelling from older storefront builds
	if orderType == "TAKE_AWAY" {
		orderType = models.OrderTypeTakeaway
	}
	if !models.ValidOrderType(orderType) {
		return models.OrderMeta{}, errInvalidType
	}
	if orderType == models.OrderTypeReserve && (req.ScheduleAt == nil || strings.TrimSpace(*req.ScheduleAt) == "") {
		return models.OrderMeta{}, errReserveNoTime
	}

	guests := req.Guests
	if guests < 0 {
		guests = 0
	}

	meta = models.OrderMeta{
		OrderType:   orderType,
		TableNumber: strings.TrimSpace(req.TableNumber),
		Guests:      guests,
		ScheduleAt:  req.ScheduleAt,
		Note:        strings.TrimSpace(req.Note),
	}
	return meta, nil
}

func normalizePaymentMethod(s string) string {
	if strings.ToUpper(strings.TrimSpace(s)) == models.PaymentTransfer {
		return models.PaymentTransfer
	}
	return models.PaymentCOD
}

func dispatchOrderNotifications(hub *notify.Hub, pusher *notify.Pusher, order models.Order) {
	hub.Broadcast("message", gin.H{"type": "new_order", "order": order})

	pusher.SendToAll("new_order", notify.Notification{
		Title: "Đơn mới!",
		Body:  fmt.Sprintf("Mã: %s\nTổng: %s\n%s", order.ID, formatVND(order.Total), order.Customer.Name),
		Data:  map[string]string{"orderId": order.ID},
	})
}

/* =========================
   GUEST LOOKUP
========================= */

// redactedOrder is the projection returned to unauthenticated callers. The
// raw phone number never leaves the store through this path.
func redactedOrder(o models.Order, includeItems bool) gin.H {
	out := gin.H{
		"id":            o.ID,
		"status":        o.Status,
		"total":         o.Total,
		"discount":      o.Discount,
		"subtotal":      o.Subtotal,
		"paymentMethod": o.PaymentMethod,
		"createdAt":     o.CreatedAt,
		"meta":          o.Meta,
		"customer": gin.H{
			"name":        o.Customer.Name,
			"phoneMasked": maskPhone(o.Customer.Phone),
		},
	}
	if o.UpdatedAt != nil {
		out["updatedAt"] = o.UpdatedAt
	}
	if includeItems {
		out["items"] = o.Items
	} else {
		count := 0
		for _, it := range o.Items {
			count += it.Qty
		}
		out["itemCount"] = count
	}
	return out
}

func LookupOrder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/lookup"

		id := canonicalID(c.Query("id"))
		phone := strings.TrimSpace(c.Query("phone"))
		if id == "" || phone == "" {
			respondWithError(c, http.StatusBadRequest, route, "Missing id or phone")
			return
		}

		var order models.Order
		found := false
		_ = st.View(func(db *models.Database) error {
			for _, o := range db.Orders {
				if canonicalID(o.ID) == id {
					order = o
					found = true
					break
				}
			}
			return nil
		})

		if !found {
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if phoneTail(order.Customer.Phone) != phoneTail(phone) {
			respondWithError(c, http.StatusForbidden, route, "Phone tail mismatch")
			return
		}

		c.JSON(http.StatusOK, redactedOrder(order, true))
	}
}

// PublicOrderStatus returns the redacted view without the phone-tail check;
// it carries only an item count, no line items.
func PublicOrderStatus(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/public/:id"

		id := canonicalID(c.Param("id"))

		var order models.Order
		found := false
		_ = st.View(func(db *models.Database) error {
			for _, o := range db.Orders {
				if canonicalID(o.ID) == id {
					order = o
					found = true
					break
				}
			}
			return nil
		})

		if !found {
			respondWithError(c, http.StatusNotFound, route, "Không tìm thấy đơn")
			return
		}
		c.JSON(http.StatusOK, redactedOrder(order, false))
	}
}

/* =========================
   GUEST SELF-CANCEL
========================= */

// GuestCancelOrder lets the customer cancel while the kitchen has not
// started: only a NEW order may flip to CANCELED through this path.
func GuestCancelOrder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/guest/:id"

		id := canonicalID(c.Param("id"))
		phone := strings.TrimSpace(c.Query("phone"))
		if id == "" || phone == "" {
			respondWithError(c, http.StatusBadRequest, route, "Missing id or phone")
			return
		}

		var updated models.Order
		err := st.Update(func(db *models.Database) error {
			for i := range db.Orders {
				if canonicalID(db.Orders[i].ID) != id {
					continue
				}
				if phoneTail(db.Orders[i].Customer.Phone) != phoneTail(phone) {
					return errPhoneMismatch
				}
				if db.Orders[i].Status != models.StatusNew {
					return errNotCancelable
				}
				now := time.Now()
				db.Orders[i].Status = models.StatusCanceled
				db.Orders[i].UpdatedAt = &now
				updated = db.Orders[i]
				return nil
			}
			return errOrderNotFound
		})

		switch {
		case errors.Is(err, errOrderNotFound):
			respondWithError(c, http.StatusNotFound, route, "Order not found")
		case errors.Is(err, errPhoneMismatch):
			respondWithError(c, http.StatusForbidden, route, "Phone tail mismatch")
		case errors.Is(err, errNotCancelable):
			respondWithError(c, http.StatusConflict, route, "Order cannot be canceled")
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
		default:
			logrus.WithField("orderId", updated.ID).Info("order canceled by guest")
			c.JSON(http.StatusOK, gin.H{"id": updated.ID, "status": updated.Status})
		}
	}
}
