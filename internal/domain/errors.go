package domain

import (
	"errors"
	"fmt"
)

// FetchError es el único error que el Market Client devuelve: fallo de red,
// status no 2xx o payload que no se puede decodificar.
type FetchError struct {
	Op         string // "list_items" | "list_orders"
	Slug       string // vacío para list_items
	StatusCode int    // 0 si no hubo respuesta HTTP
	Err        error
}

func (e *FetchError) Error() string {
	target := e.Op
	if e.Slug != "" {
		target += " " + e.Slug
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", target, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError devuelve true si err (o algún error envuelto) es un *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// ErrCatalogStale indica que no hay catálogo de items cacheado o que caducó.
var ErrCatalogStale = errors.New("item catalog missing or stale")
