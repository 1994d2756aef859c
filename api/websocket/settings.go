package websocket

import (
	"time"

	"github.com/OldStager01/resource-sentinel/pkg/config"
)

const (
	defaultWriteTimeout    = 10 * time.Second
	defaultPongTimeout     = 60 * time.Second
	defaultMaxMessageSize  = 512
	defaultClientBuffer    = 256
	defaultReadBufferSize  = 1024
	defaultWriteBufferSize = 1024
)

// Settings resolves per-connection tunables, falling back to safe
// defaults when the config leaves them unset.
type Settings struct {
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ClientBuffer    int
	ReadBufferSize  int
	WriteBufferSize int
}

func NewSettings(cfg *config.WebSocketConfig) *Settings {
	s := &Settings{
		WriteTimeout:    defaultWriteTimeout,
		PongTimeout:     defaultPongTimeout,
		MaxMessageSize:  defaultMaxMessageSize,
		ClientBuffer:    defaultClientBuffer,
		ReadBufferSize:  defaultReadBufferSize,
		WriteBufferSize: defaultWriteBufferSize,
	}

	if cfg != nil {
		if cfg.WriteTimeout > 0 {
			s.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.PongTimeout > 0 {
			s.PongTimeout = cfg.PongTimeout
		}
		if cfg.MaxMessageSize > 0 {
			s.MaxMessageSize = cfg.MaxMessageSize
		}
		if cfg.ClientBuffer > 0 {
			s.ClientBuffer = cfg.ClientBuffer
		}
		if cfg.ReadBufferSize > 0 {
			s.ReadBufferSize = cfg.ReadBufferSize
		}
		if cfg.WriteBufferSize > 0 {
			s.WriteBufferSize = cfg.WriteBufferSize
		}
	}

	if cfg != nil && cfg.PingInterval > 0 {
		s.PingInterval = cfg.PingInterval
	} else {
		s.PingInterval = (s.PongTimeout * 9) / 10
	}

	return s
}
