package service

import (
	"context"

	"go.uber.org/zap"
)

// logCodeSender writes verification codes to the log instead of delivering
// them. Real SMS/email gateways live outside this service.
type logCodeSender struct {
	logger *zap.Logger
}

// NewLogCodeSender creates a CodeSender that logs codes instead of sending them
func NewLogCodeSender(logger *zap.Logger) CodeSender {
	return &logCodeSender{logger: logger}
}

func (s *logCodeSender) SendSMS(ctx context.Context, phone, code string) error {
	s.logger.Info("Verification code issued",
		zap.String("channel", "sms"),
		zap.String("phone", phone),
		zap.String("code", code),
	)
	return nil
}

func (s *logCodeSender) SendEmail(ctx context.Context, email, code string) error {
	s.logger.Info("Verification code issued",
		zap.String("channel", "email"),
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}
