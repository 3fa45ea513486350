package notification

import (
    "context"
    "log/slog"
    "strings"
)

const (
    // KindOTPResend asks the delivery channel to send a new verification code.
    KindOTPResend = "otp_resend"
    // KindAccountVerified announces a completed onboarding.
    KindAccountVerified = "account_verified"
)

// Message describes a notification payload.
type Message struct {
    Kind        string
    Destination string
    Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
    Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
    logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
    return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger with the destination masked.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
    if n == nil || n.logger == nil {
        return nil
    }
    n.logger.Info("notification", "kind", message.Kind, "destination", Mask(message.Destination), "body", message.Body)
    return nil
}

// Mask hides all but the first character of an address's local part, or all
// but the last two digits of a phone number.
func Mask(destination string) string {
    if at := strings.IndexByte(destination, '@'); at > 0 {
        return destination[:1] + strings.Repeat("*", at-1) + destination[at:]
    }
    if len(destination) <= 2 {
        return destination
    }
    return strings.Repeat("*", len(destination)-2) + destination[len(destination)-2:]
}

// Recorder keeps sent messages in memory.
type Recorder struct {
    Messages []Message
}

// Send appends the message.
func (r *Recorder) Send(_ context.Context, message Message) error {
    r.Messages = append(r.Messages, message)
    return nil
}
