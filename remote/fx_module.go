package remote

import (
	"go.uber.org/fx"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/metrics"
)

// FXModule defines the Fx module for the remote service client.
//
// The module provides the NewClient factory and binds the Service interface to
// it, so components depending on remote.Service receive the HTTP client.
//
// Dependencies required by this module:
// - A *remote.Config instance must be available in the dependency injection container.
// - A *logger.Logger instance must be available in the dependency injection container.
var FXModule = fx.Module("remote",
	fx.Provide(
		NewClientFromParams,
		func(c *Client) Service { return c },
	),
)

// ClientParams defines dependencies needed to construct the remote client.
type ClientParams struct {
	fx.In
	Config  *Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// NewClientFromParams is an fx-friendly constructor wrapper around NewClient.
func NewClientFromParams(p ClientParams) (*Client, error) {
	c, err := NewClient(p.Config, p.Logger)
	if err != nil {
		return nil, err
	}
	return c.WithMetrics(p.Metrics), nil
}
