package config

import (
	"github.com/go-pg/pg/v10"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	Uploads struct {
		Dir       string
		URLPrefix string
	}
	Admin struct {
		Email string
	}
}

// SetDefaults fills the values an empty config file leaves unset.
func (c *Config) SetDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 4000
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.URLPrefix == "" {
		c.Uploads.URLPrefix = "/uploads"
	}
	if c.Admin.Email == "" {
		c.Admin.Email = "admin@local"
	}
}
