// Package gateway wraps the card-payment processor. Nothing outside this
// package imports the processor SDK; callers see IntentCreator and typed
// domain errors only.
package gateway

import (
	"errors"

	"boardinghouse-backend/internal/domain"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Intent is the client-usable slice of a processor payment intent.
type Intent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

// IntentCreator issues a payment intent for an amount already converted to
// minor units. bookingID travels as opaque metadata.
type IntentCreator interface {
	CreateIntent(amountMinor int64, currency, bookingID string) (Intent, error)
}

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(amountMinor int64, currency, bookingID string) (Intent, error) {
	if amountMinor <= 0 {
		return Intent{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if bookingID == "" {
		bookingID = "N/A"
	}
	params.AddMetadata("bookingId", bookingID)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return Intent{}, domain.GatewayError{Msg: stripeErr.Msg, Err: err}
		}
		return Intent{}, domain.GatewayError{Msg: "payment intent creation failed", Err: err}
	}

	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
