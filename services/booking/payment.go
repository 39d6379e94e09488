package booking

import (
	"fmt"
	"math"

	"festivo/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripePaymentProcessor creates real Stripe payment intents for checkout
// totals. The API key is set globally in main from config.
type StripePaymentProcessor struct{}

func (p *StripePaymentProcessor) CreatePaymentIntent(userID string, amount float64, currency string) (string, string, error) {
	if currency == "" {
		currency = config.AppConfig.DefaultCurrency
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("userId", userID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe payment intent failed: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}
