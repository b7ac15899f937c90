package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campus-kit/society-events/internal/events"
	"github.com/campus-kit/society-events/pkg/mailer"
)

// NotificationService turns domain events into outbound email. Sends run
// in their own goroutine with a fresh context: a slow or failing mail
// provider never blocks or fails the request that triggered it.
type NotificationService struct {
	sender  mailer.Sender
	baseURL string
	logger  *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(sender mailer.Sender, baseURL string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Register subscribes the notification handlers on the dispatcher.
func (s *NotificationService) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventUserSignedUp, s.handleUserSignedUp)
	dispatcher.Subscribe(events.EventPasswordResetRequested, s.handlePasswordReset)
	dispatcher.Subscribe(events.EventPurchaseCompleted, s.handlePurchaseCompleted)
}

func (s *NotificationService) handleUserSignedUp(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserSignedUpPayload)
	if !ok {
		s.logger.Warn("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	link := fmt.Sprintf("%s/login?verify=%s&type=newuser&userId=%s", s.baseURL, payload.VerificationCode, event.UserID)
	html := fmt.Sprintf(
		"<h1>Welcome, %s!</h1>"+
			"<p>Thanks for signing up. Verify your account to start following societies and booking tickets.</p>"+
			"<p><a href=%q>Verify my account</a></p>",
		payload.Name, link,
	)
	text := fmt.Sprintf("Welcome, %s! Verify your account: %s", payload.Name, link)

	s.send(payload.Email, "Verify your account", text, html)
	return nil
}

func (s *NotificationService) handlePasswordReset(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		s.logger.Warn("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	link := fmt.Sprintf("%s/login?forgot=%s&type=forgot&userId=%s", s.baseURL, payload.VerificationCode, event.UserID)
	html := fmt.Sprintf(
		"<h1>Password reset</h1>"+
			"<p>Hi %s, a password reset was requested for your account. If this was you, follow the link below.</p>"+
			"<p><a href=%q>Reset my password</a></p>"+
			"<p>If you did not request this, you can ignore this email.</p>",
		payload.Name, link,
	)
	text := fmt.Sprintf("Hi %s, reset your password: %s", payload.Name, link)

	s.send(payload.Email, "Reset your password", text, html)
	return nil
}

func (s *NotificationService) handlePurchaseCompleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PurchaseCompletedPayload)
	if !ok {
		s.logger.Warn("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	var sb strings.Builder
	sb.WriteString("<h1>Your tickets are confirmed</h1>")
	if payload.Event != nil {
		sb.WriteString(fmt.Sprintf(
			"<p><strong>%s</strong><br>%s<br>%s</p>",
			payload.Event.Name,
			payload.Event.Date.Format(time.RFC1123),
			payload.Event.Location,
		))
	}
	sb.WriteString(fmt.Sprintf(
		"<p>Order %s &mdash; %d ticket(s), %.2f paid via %s.</p>",
		payload.PurchaseID, payload.Quantity, payload.Total, payload.PaymentMethod,
	))
	sb.WriteString("<p>Present these codes at the door:</p><ul>")
	for _, ticket := range payload.Tickets {
		sb.WriteString(fmt.Sprintf("<li>%s<br><code>%s</code></li>", ticket.Label, ticket.QRData))
	}
	sb.WriteString("</ul>")

	text := fmt.Sprintf("Your purchase %s is confirmed: %d ticket(s), total %.2f.", payload.PurchaseID, payload.Quantity, payload.Total)

	s.send(payload.Email, "Your ticket confirmation", text, sb.String())
	return nil
}

// send fires the email off the request path. Failures are logged, never
// returned.
func (s *NotificationService) send(to, subject, text, html string) {
	if s.sender == nil {
		s.logger.Debug("mail sender not configured, skipping", zap.String("to", to), zap.String("subject", subject))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.sender.Send(ctx, to, subject, text, html); err != nil {
			s.logger.Error("failed to send email",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	}()
}
