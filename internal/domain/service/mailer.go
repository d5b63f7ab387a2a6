package service

import "context"

// Mailer defines the interface for outbound transactional email.
type Mailer interface {
	// SendOTP delivers a one-time login code to the recipient.
	SendOTP(ctx context.Context, to string, code string) error
}
