package warframemarket

// DTOs raw de la API v1 de warframe.market. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// payload es la unión cerrada de los payloads que puede traer apiResponse.
type payload interface {
	itemsPayload | ordersPayload
}

// apiResponse es el envoltorio común {"payload": {...}} de todas las respuestas.
type apiResponse[P payload] struct {
	Payload *P `json:"payload"`
}

// --- GET /items ---

type itemsPayload struct {
	Items []rawItem `json:"items"`
}

type rawItem struct {
	ID       string `json:"id"`
	URLName  string `json:"url_name"`
	ItemName string `json:"item_name"`
	Thumb    string `json:"thumb"`
	Vaulted  *bool  `json:"vaulted"`
}

// --- GET /items/{url_name}/orders ---

type ordersPayload struct {
	Orders []rawOrder `json:"orders"`
}

// rawOrder usa strings para las fechas; se parsean en mapping.go.
type rawOrder struct {
	Visible      bool    `json:"visible"`
	CreationDate string  `json:"creation_date"`
	Quantity     int     `json:"quantity"`
	User         rawUser `json:"user"`
	LastUpdate   string  `json:"last_update"`
	Platinum     int     `json:"platinum"`
	OrderType    string  `json:"order_type"`
	Platform     string  `json:"platform"`
	ID           string  `json:"id"`
	Region       string  `json:"region"`
}

type rawUser struct {
	Reputation int     `json:"reputation"`
	Locale     string  `json:"locale"`
	Avatar     *string `json:"avatar"`
	IngameName string  `json:"ingame_name"`
	LastSeen   string  `json:"last_seen"`
	ID         string  `json:"id"`
	Region     string  `json:"region"`
	Status     string  `json:"status"`
}
