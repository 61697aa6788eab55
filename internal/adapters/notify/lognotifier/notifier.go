package lognotifier

import (
	"context"

	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/notify"
)

// Notifier escribe cada toast como línea de log estructurada. Es el
// colaborador de notificación por defecto del server; una UI real
// sustituiría esto por su capa de presentación.
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) {
	if n == nil || n.log == nil {
		return
	}

	fields := map[string]any{
		"title":       msg.Title,
		"description": msg.Description,
	}

	switch msg.Severity {
	case notify.SeverityError:
		n.log.Error("notification", fields)
	default:
		n.log.Info("notification", fields)
	}
}
