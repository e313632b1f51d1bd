package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"

	"github.com/go-resty/resty/v2"
)

var ErrMissingAccessToken = errs.New("mercadopago access token is not configured")

const fallbackPayerEmail = "comprador@example.com"

// Error carries the provider's raw response body so a failed call can be
// diagnosed without replaying it.
type Error struct {
	Operation  string
	StatusCode int
	Payload    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mercadopago %s failed with status %d: %s", e.Operation, e.StatusCode, e.Payload)
}

// unit_price goes over the wire as a JSON number, which is what the provider
// expects for its two-decimal amounts.
type preferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int32   `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type preferencePayer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type preferenceBackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

type preferencePayload struct {
	Items             []preferenceItem   `json:"items"`
	Payer             preferencePayer    `json:"payer"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	AutoReturn        string             `json:"auto_return,omitempty"`
	ExternalReference string             `json:"external_reference"`
	NotificationURL   string             `json:"notification_url,omitempty"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponse struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

type MercadoPagoGateway struct {
	client *resty.Client
	cfg    config.MercadoPagoConfig
}

func NewMercadoPagoGateway(cfg config.MercadoPagoConfig) commands.PaymentGateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &MercadoPagoGateway{client: client, cfg: cfg}
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, req commands.PreferenceRequest) (*commands.Preference, error) {
	if g.cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	items := make([]preferenceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, preferenceItem{
			ID:         it.ID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.InexactFloat64(),
			CurrencyID: g.cfg.CurrencyID,
		})
	}

	// The provider rejects preferences with an empty payer email.
	payerEmail := req.Payer.Email
	if payerEmail == "" {
		payerEmail = fallbackPayerEmail
	}

	payload := preferencePayload{
		Items: items,
		Payer: preferencePayer{
			Name:    req.Payer.Name,
			Surname: req.Payer.Surname,
			Email:   payerEmail,
		},
		BackURLs: preferenceBackURLs{
			Success: g.cfg.CallbackURL,
			Pending: g.cfg.CallbackURL,
			Failure: g.cfg.CallbackURL,
		},
		ExternalReference: strconv.FormatInt(req.OrderID, 10),
		NotificationURL:   g.cfg.NotificationURL,
	}

	// The provider rejects auto_return on plain-http back URLs.
	if strings.HasPrefix(g.cfg.CallbackURL, "https://") {
		payload.AutoReturn = "approved"
	} else {
		slog.Warn("auto_return disabled: callback URL is not https",
			"callback_url", g.cfg.CallbackURL)
	}

	var result preferenceResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.cfg.AccessToken).
		SetBody(payload).
		SetResult(&result).
		Post("/checkout/preferences")
	if err != nil {
		return nil, errs.Wrap(err, "failed to call mercadopago preference API")
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, &Error{
			Operation:  "create preference",
			StatusCode: resp.StatusCode(),
			Payload:    string(resp.Body()),
		}
	}

	return &commands.Preference{
		ID:          result.ID,
		RedirectURL: result.InitPoint,
	}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*commands.Payment, error) {
	if paymentID == "" {
		return nil, nil
	}
	if g.cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	var result paymentResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.cfg.AccessToken).
		SetResult(&result).
		Get("/v1/payments/" + paymentID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to call mercadopago payment API")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &Error{
			Operation:  "get payment",
			StatusCode: resp.StatusCode(),
			Payload:    string(resp.Body()),
		}
	}

	return &commands.Payment{
		ID:                strconv.FormatInt(result.ID, 10),
		Status:            result.Status,
		ExternalReference: result.ExternalReference,
	}, nil
}
