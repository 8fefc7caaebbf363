package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender gửi một email HTML
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPConfig cấu hình SMTP. Host rỗng nghĩa là không gửi mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender gửi mail qua gomail
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPSender trả về nil khi Host rỗng
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		return nil
	}
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send gửi mail. gomail không nhận context nên chỉ kiểm tra ctx trước khi dial.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
