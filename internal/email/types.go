package email

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Config holds the SMTP settings for the provider.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
