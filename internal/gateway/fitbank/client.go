// Package fitbank implements the outbound banking-gateway port against the
// FitBank HTTP API. Every method POSTs a JSON payload to a single endpoint;
// the payload's Method field selects the operation and the partner
// identifiers are stamped on every call.
package fitbank

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
)

// dateLayout is the gateway's calendar-day convention.
const dateLayout = "02/01/2006"

const defaultTimeout = 30 * time.Second

// Config carries the gateway endpoint, credentials and fixed partner
// identifiers.
type Config struct {
	APIURL         string
	User           string
	Password       string
	PartnerID      string
	BusinessUnitID string
	TaxNumber      string
	Timeout        time.Duration
}

// Client is a stateless gateway client; each call re-authenticates with the
// fixed basic-auth credentials.
type Client struct {
	apiURL         string
	authorization  string
	partnerID      string
	businessUnitID string
	taxNumber      string
	configured     bool
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewClient creates a gateway client. A client built without credentials is
// still usable for wiring but reports Configured() == false.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.User + ":" + cfg.Password))
	return &Client{
		apiURL:         cfg.APIURL,
		authorization:  "Basic " + creds,
		partnerID:      cfg.PartnerID,
		businessUnitID: cfg.BusinessUnitID,
		taxNumber:      cfg.TaxNumber,
		configured:     cfg.User != "" && cfg.Password != "",
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

var _ portssvc.BankingGateway = (*Client)(nil)

// Configured reports whether gateway credentials are present.
func (c *Client) Configured() bool {
	return c.configured
}

// payload assembles the request body: method name, fixed partner identifiers,
// then the method-specific fields.
func (c *Client) payload(method string, fields map[string]any) map[string]any {
	p := map[string]any{
		"Method":         method,
		"PartnerId":      c.partnerID,
		"BusinessUnitId": c.businessUnitID,
		"TaxNumber":      c.taxNumber,
	}
	for k, v := range fields {
		p[k] = v
	}
	return p
}

func routingFields(r portssvc.AccountRouting) map[string]any {
	return map[string]any{
		"Bank":             r.Bank,
		"BankBranch":       r.Branch,
		"BankAccount":      r.Account,
		"BankAccountDigit": r.Digit,
	}
}

// execute POSTs the payload and decodes the envelope, returning the raw body
// alongside for verbatim storage.
func (c *Client) execute(ctx context.Context, payload map[string]any) (*envelope, json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(snippet))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &env, raw, nil
}

// GetAccountEntryPaged queries account activity over a closed calendar-day
// window and returns the balance snapshot the gateway reports with it.
func (c *Client) GetAccountEntryPaged(ctx context.Context, params portssvc.AccountEntryParams) (*portssvc.AccountEntryResult, error) {
	fields := routingFields(params.Routing)
	fields["StartDate"] = params.StartDate.Format(dateLayout)
	fields["EndDate"] = params.EndDate.Format(dateLayout)
	fields["PageSize"] = params.PageSize
	fields["PageIndex"] = params.PageIndex

	env, raw, err := c.execute(ctx, c.payload("GetAccountEntryPaged", fields))
	if err != nil {
		return nil, err
	}
	return &portssvc.AccountEntryResult{
		Success:          bool(env.Success),
		Balance:          env.Balance.Decimal,
		BlockedBalance:   env.BlockedBalance.Decimal,
		ErrorCode:        string(env.ErrorCode),
		ErrorDescription: env.ErrorDescription,
		Raw:              raw,
	}, nil
}

// GeneratePixOut initiates an outbound PIX transfer.
func (c *Client) GeneratePixOut(ctx context.Context, params portssvc.PixOutParams) (*portssvc.PixOutResult, error) {
	fields := routingFields(params.From)
	fields["ToName"] = params.ToName
	fields["ToTaxNumber"] = params.ToTaxNumber
	fields["ToBank"] = params.To.Bank
	fields["ToBankBranch"] = params.To.Branch
	fields["ToBankAccount"] = params.To.Account
	fields["ToBankAccountDigit"] = params.To.Digit
	fields["AccountType"] = params.ToAccountKind
	fields["Value"] = params.Value.String()
	fields["PaymentDate"] = params.PaymentDate.Format(dateLayout)
	fields["Identifier"] = params.Identifier
	fields["Description"] = params.Description

	env, raw, err := c.execute(ctx, c.payload("GeneratePixOut", fields))
	if err != nil {
		return nil, err
	}
	return pixOutResult(env, raw), nil
}

// GetPixOutByID re-queries the current status of a transfer.
func (c *Client) GetPixOutByID(ctx context.Context, documentNumber string, routing portssvc.AccountRouting) (*portssvc.PixOutResult, error) {
	fields := routingFields(routing)
	fields["DocumentNumber"] = documentNumber

	env, raw, err := c.execute(ctx, c.payload("GetPixOutById", fields))
	if err != nil {
		return nil, err
	}
	return pixOutResult(env, raw), nil
}

// GetPixKeys lists the PIX keys registered for an account.
func (c *Client) GetPixKeys(ctx context.Context, routing portssvc.AccountRouting) (*portssvc.PixKeysResult, error) {
	env, raw, err := c.execute(ctx, c.payload("GetPixKeys", routingFields(routing)))
	if err != nil {
		return nil, err
	}
	return &portssvc.PixKeysResult{
		Success:          bool(env.Success),
		Keys:             env.Keys,
		ErrorCode:        string(env.ErrorCode),
		ErrorDescription: env.ErrorDescription,
		Raw:              raw,
	}, nil
}

func pixOutResult(env *envelope, raw json.RawMessage) *portssvc.PixOutResult {
	return &portssvc.PixOutResult{
		Success:          bool(env.Success),
		DocumentNumber:   string(env.DocumentNumber),
		ReceiptURL:       env.ReceiptURL,
		ErrorCode:        string(env.ErrorCode),
		ErrorDescription: env.ErrorDescription,
		Raw:              raw,
	}
}
