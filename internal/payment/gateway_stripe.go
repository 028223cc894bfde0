package payment

import (
	"context"
	"encoding/json"
	"math"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway drives Stripe hosted checkout. Calls are blocking round
// trips with the SDK's default timeout behavior; failures propagate to the
// caller unchanged.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(apiKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Currency),
				UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Order total"),
				},
			},
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) GetStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return SessionStatus{}, err
	}

	return SessionStatus{
		SessionID:     sess.ID,
		Status:        string(sess.Status),
		PaymentStatus: normalizeStatus(sess),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
	}, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return WebhookEvent{}, err
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		sess, err := sessionFromEvent(event)
		if err != nil {
			return WebhookEvent{}, err
		}
		return WebhookEvent{SessionID: sess.ID, PaymentStatus: normalizeStatus(&sess)}, nil
	case "checkout.session.async_payment_failed":
		sess, err := sessionFromEvent(event)
		if err != nil {
			return WebhookEvent{}, err
		}
		return WebhookEvent{SessionID: sess.ID, PaymentStatus: StatusFailed}, nil
	case "checkout.session.expired":
		sess, err := sessionFromEvent(event)
		if err != nil {
			return WebhookEvent{}, err
		}
		return WebhookEvent{SessionID: sess.ID, PaymentStatus: StatusExpired}, nil
	default:
		// Event types we do not track verify fine but carry no session.
		return WebhookEvent{}, nil
	}
}

func sessionFromEvent(event stripe.Event) (stripe.CheckoutSession, error) {
	var sess stripe.CheckoutSession
	err := json.Unmarshal(event.Data.Raw, &sess)
	return sess, err
}

// normalizeStatus maps Stripe's session/payment states onto the local
// transaction statuses.
func normalizeStatus(sess *stripe.CheckoutSession) string {
	if sess.Status == stripe.CheckoutSessionStatusExpired {
		return StatusExpired
	}
	switch sess.PaymentStatus {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return StatusPaid
	default:
		return StatusPending
	}
}
