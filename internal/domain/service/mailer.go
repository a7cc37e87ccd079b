package service

import "context"

// Mailer defines the interface for outbound transactional email.
// The only mail this system sends is the account-verification message.
type Mailer interface {
	// SendVerificationEmail delivers the verification link carrying the token
	// to the given recipient address.
	SendVerificationEmail(ctx context.Context, recipient, username, token string) error
}
