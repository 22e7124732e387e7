package domain

import "time"

// OrderType indica si el dueño de la orden compra o vende.
type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// UserStatus es el estado de conexión del dueño de una orden.
// Los valores desconocidos se conservan tal cual los devuelve la API.
type UserStatus string

const (
	UserStatusOnline  UserStatus = "online"
	UserStatusOffline UserStatus = "offline"
	UserStatusInGame  UserStatus = "ingame"
)

// IsAvailable devuelve true si el usuario puede responder a un whisper.
func (s UserStatus) IsAvailable() bool {
	return s == UserStatusOnline || s == UserStatusInGame
}

// User es el dueño de una orden. Va embebido por valor en Order.
type User struct {
	Reputation int
	Locale     string
	Avatar     *string // nil si el usuario no tiene avatar
	IngameName string
	LastSeen   time.Time
	ID         string
	Region     string
	Status     UserStatus
}

// Order es una orden activa de compra o venta en warframe.market.
//
// Una orden recién obtenida de la API no trae Item (orden "raw").
// WithItem la enriquece con el item al que pertenece.
type Order struct {
	Visible      bool
	CreationDate time.Time
	Quantity     int
	User         User
	LastUpdate   time.Time
	Platinum     int
	OrderType    OrderType
	Platform     string
	ID           string
	Region       string
	Item         *Item
}

// WithItem devuelve una copia de la orden con el item asignado.
// No modifica ni la orden ni el item originales.
func (o Order) WithItem(item Item) Order {
	it := item
	if item.Vaulted != nil {
		v := *item.Vaulted
		it.Vaulted = &v
	}
	o.Item = &it
	return o
}

// IsEnriched devuelve true si la orden ya lleva su item.
func (o Order) IsEnriched() bool {
	return o.Item != nil
}

// ItemURLName devuelve el slug del item o "" para órdenes raw.
func (o Order) ItemURLName() string {
	if o.Item == nil {
		return ""
	}
	return o.Item.URLName
}
