package notify

import "context"

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification es el mensaje tipo toast que consume la UI.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier recibe exactamente una notificación por operación de usuario
// completada o fallida. Nunca debe bloquear al emisor por mucho tiempo.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
