package core

import (
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config dao config
type Config struct {
	App      App       `json:"app"`
	DB       db.Config `json:"db"`
	Admins   []string  `json:"admins"`
	Policy   Policy    `json:"policy"`
	Cache    Cache     `json:"cache"`
	Notifier Notifier  `json:"notifier"`
}

// App app config
type App struct {
	Location string `json:"location"`
}

// Cache organization read cache config
type Cache struct {
	Size       int    `json:"size"`
	Expiration string `json:"expiration"`
}

// Notifier event delivery config
type Notifier struct {
	Schedule string    `json:"schedule"`
	Batch    int       `json:"batch"`
	Grace    string    `json:"grace"`
	Webhook  string    `json:"webhook"`
	Mixin    MixinSink `json:"mixin"`
}

// MixinSink mixin bot used to push events to the admins
type MixinSink struct {
	mixin.Keystore
	Enabled bool `json:"enabled"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	system := System{Admins: c.Admins}
	return system.IsAdmin(userID)
}
