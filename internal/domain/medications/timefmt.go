package medications

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDisplayTime convierte "HH:MM" (24h) a "h:MM AM/PM".
// Es idempotente: si el input ya trae AM/PM se devuelve tal cual.
// Input malformado se devuelve sin tocar; nunca falla.
func FormatDisplayTime(raw string) string {
	if strings.Contains(raw, "AM") || strings.Contains(raw, "PM") {
		return raw
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return raw
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return raw
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return raw
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return raw
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	hour12 := hours % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minutes, period)
}
