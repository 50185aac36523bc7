package email

import (
	"context"
)

type Service interface {
	SendPasswordReset(ctx context.Context, to string, token string) error
	SendCustom(ctx context.Context, to string, subject string, htmlBody string) error
}
