package attestclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/pkg/httpclient"
	"github.com/usdm-network/ledger-node/pkg/logger"
)

type Config struct {
	Disabled     bool   `mapstructure:"disabled"`
	BaseURL      string `mapstructure:"base_url"`
	Name         string `mapstructure:"name"`
	WebsiteURL   string `mapstructure:"website_url"`
	LedgerAPIURL string `mapstructure:"ledger_api_url"`
}

// Client publishes reserve attestations and node liveness reports to an
// external transparency endpoint.
type Client struct {
	httpClient *httpclient.Client
	config     Config
}

func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("attestation.base_url config is required if attestation reporting is enabled")
	}
	if config.Name == "" {
		return nil, errors.New("attestation.name config is required if attestation reporting is enabled")
	}
	httpClient, err := httpclient.New(config.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{
		httpClient: httpClient,
		config:     config,
	}, nil
}

type SubmitAttestationPayload struct {
	Type                string    `json:"type"`
	ClientVersion       string    `json:"clientVersion"`
	DBVersion           int       `json:"dbVersion"`
	EventHashVersion    int       `json:"eventHashVersion"`
	Sequence            uint64    `json:"sequence"`
	Timestamp           time.Time `json:"timestamp"`
	TotalSupply         string    `json:"totalSupply"`
	TotalReserves       string    `json:"totalReserves"`
	Ratio               string    `json:"ratio"`
	EventHash           string    `json:"eventHash"`
	CumulativeEventHash string    `json:"cumulativeEventHash"`
}

func (c *Client) SubmitAttestation(ctx context.Context, payload SubmitAttestationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := c.httpClient.Post(ctx, "/v1/report/attestation", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit attestation report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.DebugContext(ctx, "attestation report submitted", slog.Any("payload", payload))
	return nil
}

type SubmitNodeReportPayload struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	WebsiteURL   string `json:"websiteURL,omitempty"`
	LedgerAPIURL string `json:"ledgerAPIURL,omitempty"`
}

func (c *Client) SubmitNodeReport(ctx context.Context, module string) error {
	payload := SubmitNodeReportPayload{
		Name:         c.config.Name,
		Type:         module,
		WebsiteURL:   c.config.WebsiteURL,
		LedgerAPIURL: c.config.LedgerAPIURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := c.httpClient.Post(ctx, "/v1/report/node", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit node report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.InfoContext(ctx, "node report submitted", slog.Any("payload", payload))
	return nil
}
