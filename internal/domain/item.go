package domain

// Item es un item comerciable de warframe.market.
type Item struct {
	ID       string
	URLName  string // slug usado en las rutas de la API, p.ej. "new_loka_sigil"
	ItemName string
	Thumb    string
	// Vaulted es nil cuando la API no informa el campo.
	// Un item vaulted ya no se obtiene de las fuentes normales y suele valer más.
	Vaulted *bool
}

// IsVaulted devuelve true solo si la API marcó el item como vaulted.
func (i Item) IsVaulted() bool {
	return i.Vaulted != nil && *i.Vaulted
}

// DisplayName devuelve el nombre del item o el slug si el nombre está vacío.
func (i Item) DisplayName() string {
	if i.ItemName != "" {
		return i.ItemName
	}
	return i.URLName
}
