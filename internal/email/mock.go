package email

import "threadswap_backend/internal/logger"

// MockProvider logs instead of sending. Used in development and tests.
type MockProvider struct {
	Sent []*Email
}

func (p *MockProvider) Send(email *Email) error {
	p.Sent = append(p.Sent, email)
	logger.Debug("mock email", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *MockProvider) SendSwapAccepted(to, itemTitle string) error {
	return p.Send(swapAcceptedEmail(to, itemTitle))
}

func (p *MockProvider) SendSwapCompleted(to, itemTitle string) error {
	return p.Send(swapCompletedEmail(to, itemTitle))
}
