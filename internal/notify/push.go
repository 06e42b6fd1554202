package notify

import (
	"encoding/json"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"

	"backend/internal/models"
	"backend/internal/store"
)

// Notification is the payload shown by the admin's service worker.
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

type pushMessage struct {
	Type         string       `json:"type"`
	Notification Notification `json:"notification"`
}

// Pusher sends Web Push notifications to every registered subscription.
// Subscriptions live in the data document so they survive restarts.
type Pusher struct {
	publicKey  string
	privateKey string
	subject    string
	store      *store.Store

	// swapped out in tests
	send func(message []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)
}

func NewPusher(publicKey, privateKey, subject string, st *store.Store) *Pusher {
	return &Pusher{
		publicKey:  publicKey,
		privateKey: privateKey,
		subject:    subject,
		store:      st,
		send:       webpush.SendNotification,
	}
}

// Enabled reports whether a VAPID key pair is configured. Everything is a
// no-op without one.
func (p *Pusher) Enabled() bool {
	return p.publicKey != "" && p.privateKey != ""
}

func (p *Pusher) PublicKey() string {
	return p.publicKey
}

// Subscribe registers a browser subscription, deduplicated by endpoint.
func (p *Pusher) Subscribe(sub models.PushSubscription) error {
	if !p.Enabled() {
		return nil
	}
	return p.store.Update(func(db *models.Database) error {
		for _, existing := range db.Settings.Push.Subscriptions {
			if existing.Endpoint == sub.Endpoint {
				return nil
			}
		}
		db.Settings.Push.Subscriptions = append(db.Settings.Push.Subscriptions, sub)
		return nil
	})
}

func (p *Pusher) Unsubscribe(endpoint string) error {
	return p.store.Update(func(db *models.Database) error {
		kept := db.Settings.Push.Subscriptions[:0]
		for _, sub := range db.Settings.Push.Subscriptions {
			if sub.Endpoint != endpoint {
				kept = append(kept, sub)
			}
		}
		db.Settings.Push.Subscriptions = kept
		return nil
	})
}

// SendToAll delivers the message to every subscription. Deliveries are
// independent: an endpoint that reports itself gone (404/410) is pruned from
// the registry, any other failure is logged and the subscription kept.
func (p *Pusher) SendToAll(msgType string, n Notification) {
	if !p.Enabled() {
		return
	}

	var subs []models.PushSubscription
	_ = p.store.View(func(db *models.Database) error {
		subs = append(subs, db.Settings.Push.Subscriptions...)
		return nil
	})
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(pushMessage{Type: msgType, Notification: n})
	if err != nil {
		logrus.WithError(err).Error("push payload marshal failed")
		return
	}

	var dead []string
	for _, sub := range subs {
		target := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{Auth: sub.Keys.Auth, P256dh: sub.Keys.P256dh},
		}
		resp, err := p.send(payload, target, &webpush.Options{
			Subscriber:      p.subject,
			VAPIDPublicKey:  p.publicKey,
			VAPIDPrivateKey: p.privateKey,
			TTL:             60,
		})
		if err != nil {
			logrus.WithError(err).WithField("endpoint", sub.Endpoint).Warn("push delivery failed")
			continue
		}
		switch resp.StatusCode {
		case http.StatusNotFound, http.StatusGone:
			dead = append(dead, sub.Endpoint)
		default:
			if resp.StatusCode >= 400 {
				logrus.WithFields(logrus.Fields{
					"endpoint": sub.Endpoint,
					"status":   resp.StatusCode,
				}).Warn("push delivery rejected")
			}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	if len(dead) > 0 {
		if err := p.prune(dead); err != nil {
			logrus.WithError(err).Error("pruning dead push subscriptions failed")
		}
	}
}

func (p *Pusher) prune(endpoints []string) error {
	gone := make(map[string]bool, len(endpoints))
	for _, e := range endpoints {
		gone[e] = true
	}
	return p.store.Update(func(db *models.Database) error {
		kept := db.Settings.Push.Subscriptions[:0]
		for _, sub := range db.Settings.Push.Subscriptions {
			if !gone[sub.Endpoint] {
				kept = append(kept, sub)
			}
		}
		db.Settings.Push.Subscriptions = kept
		return nil
	})
}
