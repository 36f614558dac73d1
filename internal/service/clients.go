package service

import (
	"errors"

	"naver-go/internal/config"
	"naver-go/pkg/naver"
	"naver-go/pkg/ncloud"
	"naver-go/pkg/transport"
)

// Clients holds one API client per configured credential family. A family
// without credentials is nil. Both share one transport.
type Clients struct {
	Consumer  *naver.Client
	Cloud     *ncloud.Client
	Transport *transport.Client
}

// NewClients builds the clients for cfg. doer overrides the fasthttp
// transport when non-nil.
func NewClients(cfg *config.Config, doer transport.Doer) (*Clients, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	clients := &Clients{}
	if doer == nil {
		clients.Transport = transport.New(cfg.Transport.ToTransport())
		doer = clients.Transport
	}

	if cfg.Consumer.Configured() {
		var opts []naver.Option
		if cfg.Consumer.BaseURL != "" {
			opts = append(opts, naver.WithBaseURL(cfg.Consumer.BaseURL))
		}
		if cfg.Consumer.MapBaseURL != "" {
			opts = append(opts, naver.WithMapBaseURL(cfg.Consumer.MapBaseURL))
		}
		c, err := naver.NewClient(
			naver.Credentials{ClientID: cfg.Consumer.ClientID, ClientSecret: cfg.Consumer.ClientSecret},
			doer, opts...)
		if err != nil {
			return nil, err
		}
		clients.Consumer = c
	}

	if cfg.Cloud.Configured() {
		var opts []ncloud.Option
		if cfg.Cloud.BaseURL != "" {
			opts = append(opts, ncloud.WithBaseURL(cfg.Cloud.BaseURL))
		}
		c, err := ncloud.NewClient(
			ncloud.Credentials{KeyID: cfg.Cloud.KeyID, Key: cfg.Cloud.Key},
			doer, opts...)
		if err != nil {
			return nil, err
		}
		clients.Cloud = c
	}

	return clients, nil
}

// ConsumerAPI returns the consumer client as an interface, nil when absent.
func (c *Clients) ConsumerAPI() ConsumerAPI {
	if c.Consumer == nil {
		return nil
	}
	return c.Consumer
}

// CloudAPI returns the cloud client as an interface, nil when absent.
func (c *Clients) CloudAPI() CloudAPI {
	if c.Cloud == nil {
		return nil
	}
	return c.Cloud
}
