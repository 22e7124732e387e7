package domain

// Evaluation es el resultado de evaluar una orden enriquecida:
// la orden, su score de rentabilidad y el mensaje listo para mostrar.
type Evaluation struct {
	Order   Order
	Score   int
	Message string
}
