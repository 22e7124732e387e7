package warframemarket

import (
	"log/slog"
	"time"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// mapItems convierte los DTOs de /items a domain.Item conservando el orden.
func mapItems(raw []rawItem) []domain.Item {
	items := make([]domain.Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, domain.Item{
			ID:       r.ID,
			URLName:  r.URLName,
			ItemName: r.ItemName,
			Thumb:    r.Thumb,
			Vaulted:  r.Vaulted,
		})
	}
	return items
}

// mapOrders convierte los DTOs de /orders a órdenes raw (sin Item) conservando el orden.
func mapOrders(raw []rawOrder) []domain.Order {
	orders := make([]domain.Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, mapOrder(r))
	}
	return orders
}

func mapOrder(r rawOrder) domain.Order {
	return domain.Order{
		Visible:      r.Visible,
		CreationDate: parseTimestamp(r.CreationDate),
		Quantity:     r.Quantity,
		User: domain.User{
			Reputation: r.User.Reputation,
			Locale:     r.User.Locale,
			Avatar:     r.User.Avatar,
			IngameName: r.User.IngameName,
			LastSeen:   parseTimestamp(r.User.LastSeen),
			ID:         r.User.ID,
			Region:     r.User.Region,
			Status:     domain.UserStatus(r.User.Status),
		},
		LastUpdate: parseTimestamp(r.LastUpdate),
		Platinum:   r.Platinum,
		OrderType:  domain.OrderType(r.OrderType),
		Platform:   r.Platform,
		ID:         r.ID,
		Region:     r.Region,
	}
}

// parseTimestamp parsea las fechas ISO-8601 de la API ("2024-01-02T03:04:05.000+00:00").
// Devuelve time.Time{} si el campo está vacío o no se reconoce el formato.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000-07:00",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	slog.Debug("unrecognized timestamp", "value", s)
	return time.Time{}
}
