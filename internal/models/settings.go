package models

// PromoConfig is the admin-managed promotion. Start/End are the raw values
// from the admin console's datetime inputs; nil means unbounded.
type PromoConfig struct {
	Enabled bool    `json:"enabled"`
	Percent float64 `json:"percent"`
	Start   *string `json:"start"`
	End     *string `json:"end"`
}

type PushKeys struct {
	Auth   string `json:"auth"`
	P256dh string `json:"p256dh"`
}

// PushSubscription mirrors the browser PushSubscription JSON. Subscriptions
// are deduplicated by endpoint.
type PushSubscription struct {
	Endpoint string   `json:"endpoint"`
	Keys     PushKeys `json:"keys"`
}

type PushSettings struct {
	Subscriptions []PushSubscription `json:"subscriptions"`
}

type Settings struct {
	Promo PromoConfig  `json:"promo"`
	Push  PushSettings `json:"push"`
}

// Database is the whole persisted document. Version is bumped on every
// write so concurrent writers from a second process can be detected.
type Database struct {
	Version  int64     `json:"version"`
	Products []Product `json:"products"`
	Orders   []Order   `json:"orders"`
	Settings Settings  `json:"settings"`
}
