package config

// ServerConfig configures the dashboard API listener.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies the default listen address.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
