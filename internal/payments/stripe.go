package payments

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Provider is the payment-processor boundary the services depend on. All
// amounts are integer minor units; nothing is rounded after a provider call.
type Provider interface {
	// CreateConnectedAccount creates an express account for a creator.
	CreateConnectedAccount(email string) (accountID string, err error)

	// CreateOnboardingLink returns a one-time onboarding URL for an account.
	CreateOnboardingLink(accountID string) (url string, err error)

	// CreatePaymentIntent creates a destination charge: funds route to the
	// connected account minus the application fee. The idempotency key makes
	// a retried attempt safe.
	CreatePaymentIntent(amountCents int64, currency, destinationAccount string, applicationFeeCents int64, idempotencyKey string) (intentID, clientSecret string, err error)

	// AccountStatus reports whether the account has completed onboarding and
	// can receive payouts.
	AccountStatus(accountID string) (detailsSubmitted, payoutsEnabled bool, err error)

	// ListPayouts lists recent payouts for a connected account.
	ListPayouts(accountID string, limit int) ([]PayoutInfo, error)

	// CreatePayout requests a payout of the account's balance.
	CreatePayout(accountID string, amountCents int64, currency, idempotencyKey string) (payoutID string, err error)
}

// PayoutInfo is the subset of payout fields the API exposes.
type PayoutInfo struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	ArrivalDate int64  `json:"arrival_date"`
}

// StripeProvider implements Provider over the Stripe API.
type StripeProvider struct {
	api        *client.API
	refreshURL string
	returnURL  string
}

// NewStripeProvider builds a provider with its own API client; nothing is
// stored in stripe-go's package-level state.
func NewStripeProvider(secretKey, onboardingRefreshURL, onboardingReturnURL string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:        api,
		refreshURL: onboardingRefreshURL,
		returnURL:  onboardingReturnURL,
	}
}

func (p *StripeProvider) CreateConnectedAccount(email string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}

	acct, err := p.api.Accounts.New(params)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (p *StripeProvider) CreateOnboardingLink(accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(p.refreshURL),
		ReturnURL:  stripe.String(p.returnURL),
		Type:       stripe.String("account_onboarding"),
	}

	link, err := p.api.AccountLinks.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

func (p *StripeProvider) CreatePaymentIntent(amountCents int64, currency, destinationAccount string, applicationFeeCents int64, idempotencyKey string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(amountCents),
		Currency:             stripe.String(currency),
		ApplicationFeeAmount: stripe.Int64(applicationFeeCents),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(destinationAccount),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.SetIdempotencyKey(idempotencyKey)

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", "", err
	}
	return intent.ID, intent.ClientSecret, nil
}

func (p *StripeProvider) AccountStatus(accountID string) (bool, bool, error) {
	acct, err := p.api.Accounts.GetByID(accountID, nil)
	if err != nil {
		return false, false, err
	}
	return acct.DetailsSubmitted, acct.PayoutsEnabled, nil
}

func (p *StripeProvider) ListPayouts(accountID string, limit int) ([]PayoutInfo, error) {
	params := &stripe.PayoutListParams{}
	params.Limit = stripe.Int64(int64(limit))
	params.SetStripeAccount(accountID)

	var payouts []PayoutInfo
	iter := p.api.Payouts.List(params)
	for iter.Next() {
		po := iter.Payout()
		payouts = append(payouts, PayoutInfo{
			ID:          po.ID,
			AmountCents: po.Amount,
			Currency:    string(po.Currency),
			Status:      string(po.Status),
			ArrivalDate: po.ArrivalDate,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (p *StripeProvider) CreatePayout(accountID string, amountCents int64, currency, idempotencyKey string) (string, error) {
	params := &stripe.PayoutParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	params.SetStripeAccount(accountID)
	params.SetIdempotencyKey(idempotencyKey)

	po, err := p.api.Payouts.New(params)
	if err != nil {
		return "", err
	}
	return po.ID, nil
}
