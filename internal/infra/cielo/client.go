package cielo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	sandboxAPIURL   = "https://apisandbox.cieloecommerce.cielo.com.br"
	sandboxQueryURL = "https://apiquerysandbox.cieloecommerce.cielo.com.br"
	prodAPIURL      = "https://api.cieloecommerce.cielo.com.br"
	prodQueryURL    = "https://apiquery.cieloecommerce.cielo.com.br"

	boletoProvider       = "Bradesco2"
	defaultPixExpMinutes = 60
)

var ErrMissingCredentials = errors.New("cielo: merchant credentials are required")

type Config struct {
	MerchantID  string
	MerchantKey string
	// Production selects the live hosts; default is sandbox.
	Production bool
	// APIBaseURL/QueryBaseURL override the environment hosts (used in tests).
	APIBaseURL   string
	QueryBaseURL string

	Timeout       time.Duration // default 30s (10s in sandbox)
	MaxAttempts   int           // default 3
	RetryDelay    time.Duration // default 1s
	BackoffFactor float64       // default 2
}

type Client struct {
	merchantID  string
	merchantKey string
	apiURL      string
	queryURL    string

	httpClient    *http.Client
	logger        *slog.Logger
	maxAttempts   int
	retryDelay    time.Duration
	backoffFactor float64
	sleep         sleepFunc
	newRequestID  func() string
}

// NewClient fails fast when merchant credentials are absent; there is no
// degraded mode.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.MerchantID == "" || cfg.MerchantKey == "" {
		return nil, ErrMissingCredentials
	}

	apiURL, queryURL := sandboxAPIURL, sandboxQueryURL
	timeout := 10 * time.Second
	if cfg.Production {
		apiURL, queryURL = prodAPIURL, prodQueryURL
		timeout = 30 * time.Second
	}
	if cfg.APIBaseURL != "" {
		apiURL = cfg.APIBaseURL
	}
	if cfg.QueryBaseURL != "" {
		queryURL = cfg.QueryBaseURL
	}
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.BackoffFactor == 0 {
		cfg.BackoffFactor = 2
	}

	return &Client{
		merchantID:    cfg.MerchantID,
		merchantKey:   cfg.MerchantKey,
		apiURL:        strings.TrimRight(apiURL, "/"),
		queryURL:      strings.TrimRight(queryURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
		maxAttempts:   cfg.MaxAttempts,
		retryDelay:    cfg.RetryDelay,
		backoffFactor: cfg.BackoffFactor,
		sleep:         sleepContext,
		newRequestID:  uuid.NewString,
	}, nil
}

// Cents converts an amount in reais to the integer cents the vendor
// expects, rounding half away from zero.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MaskCard keeps only the last 4 digits for logging.
func MaskCard(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

func (c *Client) CreateCreditCardPayment(ctx context.Context, orderID string, customer Customer, amount float64, card Card, installments int, capture bool, softDescriptor string) (*SaleResponse, error) {
	if installments <= 0 {
		installments = 1
	}
	req := SaleRequest{
		MerchantOrderID: orderID,
		Customer:        customer,
		Payment: Payment{
			Type:           "CreditCard",
			Amount:         Cents(amount),
			Installments:   installments,
			Capture:        capture,
			SoftDescriptor: softDescriptor,
			CreditCard:     &card,
		},
	}
	c.logger.Info("creating credit card payment",
		"orderId", orderID,
		"amountCents", req.Payment.Amount,
		"installments", installments,
		"card", MaskCard(card.CardNumber),
	)
	return c.createSale(ctx, req, "credit card payment")
}

// CreateDebitCardPayment always requests authentication; the caller must
// redirect the customer to the AuthenticationUrl in the response.
func (c *Client) CreateDebitCardPayment(ctx context.Context, orderID string, customer Customer, amount float64, card Card, returnURL string) (*SaleResponse, error) {
	req := SaleRequest{
		MerchantOrderID: orderID,
		Customer:        customer,
		Payment: Payment{
			Type:         "DebitCard",
			Amount:       Cents(amount),
			Authenticate: true,
			ReturnURL:    returnURL,
			DebitCard:    &card,
		},
	}
	c.logger.Info("creating debit card payment",
		"orderId", orderID,
		"amountCents", req.Payment.Amount,
		"card", MaskCard(card.CardNumber),
	)
	return c.createSale(ctx, req, "debit card payment")
}

func (c *Client) CreatePixPayment(ctx context.Context, orderID string, customer Customer, amount float64, expirationMinutes int) (*SaleResponse, error) {
	if expirationMinutes <= 0 {
		expirationMinutes = defaultPixExpMinutes
	}
	req := SaleRequest{
		MerchantOrderID: orderID,
		Customer:        customer,
		Payment: Payment{
			Type:             "Pix",
			Amount:           Cents(amount),
			QrCodeExpiration: expirationMinutes * 60,
		},
	}
	c.logger.Info("creating pix payment",
		"orderId", orderID,
		"amountCents", req.Payment.Amount,
		"expirationMinutes", expirationMinutes,
	)
	return c.createSale(ctx, req, "pix payment")
}

func (c *Client) CreateBoletoPayment(ctx context.Context, orderID string, customer Customer, amount float64, opts BoletoOptions) (*SaleResponse, error) {
	if opts.BoletoNumber == "" {
		opts.BoletoNumber = orderID
	}
	identification := c.merchantID
	if len(identification) > 14 {
		identification = identification[:14]
	}
	req := SaleRequest{
		MerchantOrderID: orderID,
		Customer:        customer,
		Payment: Payment{
			Type:           "Boleto",
			Amount:         Cents(amount),
			Provider:       boletoProvider,
			BoletoNumber:   opts.BoletoNumber,
			ExpirationDate: opts.ExpirationDate,
			Identification: identification,
			Instructions:   opts.Instructions,
			Demonstrative:  opts.Demonstrative,
		},
	}
	c.logger.Info("creating boleto payment",
		"orderId", orderID,
		"amountCents", req.Payment.Amount,
		"boletoNumber", opts.BoletoNumber,
	)
	return c.createSale(ctx, req, "boleto payment")
}

// Capture settles an authorized transaction; amount in reais captures
// partially when given, the full authorization otherwise.
func (c *Client) Capture(ctx context.Context, paymentID string, amount *float64) (*CaptureResponse, error) {
	endpoint := fmt.Sprintf("%s/1/sales/%s/capture", c.apiURL, url.PathEscape(paymentID))
	if amount != nil {
		endpoint += fmt.Sprintf("?amount=%d", Cents(*amount))
	}
	var out CaptureResponse
	err := withRetry(ctx, c.logger, func() error {
		return c.doRequest(ctx, http.MethodPut, endpoint, nil, &out)
	}, c.maxAttempts, c.retryDelay, c.backoffFactor, c.sleep)
	if err != nil {
		return nil, normalizeError(c.logger, err, "capture transaction")
	}
	return &out, nil
}

// Void cancels an authorized or captured transaction, partially when an
// amount is given.
func (c *Client) Void(ctx context.Context, paymentID string, amount *float64) (*CaptureResponse, error) {
	endpoint := fmt.Sprintf("%s/1/sales/%s/void", c.apiURL, url.PathEscape(paymentID))
	if amount != nil {
		endpoint += fmt.Sprintf("?amount=%d", Cents(*amount))
	}
	var out CaptureResponse
	err := withRetry(ctx, c.logger, func() error {
		return c.doRequest(ctx, http.MethodPut, endpoint, nil, &out)
	}, c.maxAttempts, c.retryDelay, c.backoffFactor, c.sleep)
	if err != nil {
		return nil, normalizeError(c.logger, err, "void transaction")
	}
	return &out, nil
}

// Get queries transaction state on the read-only query host.
func (c *Client) Get(ctx context.Context, paymentID string) (*SaleResponse, error) {
	endpoint := fmt.Sprintf("%s/1/sales/%s", c.queryURL, url.PathEscape(paymentID))
	var out SaleResponse
	err := withRetry(ctx, c.logger, func() error {
		return c.doRequest(ctx, http.MethodGet, endpoint, nil, &out)
	}, c.maxAttempts, c.retryDelay, c.backoffFactor, c.sleep)
	if err != nil {
		return nil, normalizeError(c.logger, err, "query transaction")
	}
	return &out, nil
}

func (c *Client) createSale(ctx context.Context, req SaleRequest, opName string) (*SaleResponse, error) {
	endpoint := c.apiURL + "/1/sales/"
	var out SaleResponse
	err := withRetry(ctx, c.logger, func() error {
		return c.doRequest(ctx, http.MethodPost, endpoint, req, &out)
	}, c.maxAttempts, c.retryDelay, c.backoffFactor, c.sleep)
	if err != nil {
		return nil, normalizeError(c.logger, err, opName)
	}
	return &out, nil
}

// doRequest issues one HTTP attempt with a fresh RequestId header. HTTP
// statuses >= 400 become *Error carrying the raw vendor body.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("MerchantId", c.merchantID)
	req.Header.Set("MerchantKey", c.merchantKey)
	req.Header.Set("RequestId", c.newRequestID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return newHTTPError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}
	return nil
}
