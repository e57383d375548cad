package email

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"ticket-store/internal/config"
	"ticket-store/internal/logger"
)

var ErrNotConfigured = errors.New("smtp configuration is missing")

// SendFunc matches smtp.SendMail; tests swap in a recorder.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender builds and sends order-confirmation emails as multipart
// HTML + plain text.
type Sender struct {
	Config config.EmailConfig
	Logger *logger.Logger
	Send   SendFunc
}

func NewSender(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{
		Config: cfg,
		Logger: log,
		Send:   smtp.SendMail,
	}
}

// Configured reports whether every SMTP setting needed to send is present.
func (s *Sender) Configured() bool {
	return s.Config.SMTPHost != "" && s.Config.Username != "" && s.Config.Password != "" && s.Config.From != ""
}

// Subject picks the confirmation subject line for the order kind.
func Subject(isFree bool) string {
	if isFree {
		return "Order Confirmation - Free Ticket"
	}
	return "Order Confirmation - Payment Required"
}

// SendOrderConfirmation renders and sends the confirmation email for one
// order.
func (s *Sender) SendOrderConfirmation(to string, data TemplateData) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	msg, err := s.buildMessage(to, Subject(data.IsFree), data)
	if err != nil {
		return fmt.Errorf("failed to build confirmation email: %w", err)
	}

	addr := s.Config.SMTPHost + ":" + s.Config.SMTPPort
	auth := smtp.PlainAuth("", s.Config.Username, s.Config.Password, s.Config.SMTPHost)
	if err := s.Send(addr, auth, s.Config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	s.Logger.Info("EMAIL", fmt.Sprintf("order confirmation sent to %s for order %s", to, data.OrderID))
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so clients
// fall back to plain text when they refuse HTML.
func (s *Sender) buildMessage(to, subject string, data TemplateData) ([]byte, error) {
	var htmlBody bytes.Buffer
	if err := htmlTemplate.Execute(&htmlBody, data); err != nil {
		return nil, err
	}
	var textBody bytes.Buffer
	if err := textTemplate.Execute(&textBody, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", s.Config.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write(textBody.Bytes()); err != nil {
		return nil, err
	}

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write(htmlBody.Bytes()); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
