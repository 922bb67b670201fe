package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP via gomail.
type SMTPProvider struct {
	config *Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *Config) (*SMTPProvider, error) {
	if config.Host == "" || config.FromEmail == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendSwapAccepted(to, itemTitle string) error {
	return p.Send(swapAcceptedEmail(to, itemTitle))
}

func (p *SMTPProvider) SendSwapCompleted(to, itemTitle string) error {
	return p.Send(swapCompletedEmail(to, itemTitle))
}
