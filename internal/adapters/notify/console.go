package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
	now   func() time.Time
}

// NewConsole crea un notificador que escribe a stdout.
// Con table=true imprime una tabla; si no, una línea por mensaje.
func NewConsole(table bool) *Console {
	return NewConsoleWriter(os.Stdout, table)
}

// NewConsoleWriter crea un notificador que escribe en w (para tests).
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table, now: time.Now}
}

// Notify imprime las evaluaciones en el modo configurado.
func (c *Console) Notify(_ context.Context, evaluations []domain.Evaluation) error {
	stamp := c.now().Format("15:04:05")
	if len(evaluations) == 0 {
		fmt.Fprintf(c.out, "[%s] no orders found\n", stamp)
		return nil
	}

	if c.table {
		fmt.Fprintf(c.out, "\n[%s] %d orders\n", stamp, len(evaluations))
		return c.printTable(evaluations)
	}

	for _, e := range evaluations {
		fmt.Fprintln(c.out, e.Message)
	}
	return nil
}

// printTable imprime las evaluaciones como tabla; la última columna es el mensaje.
func (c *Console) printTable(evals []domain.Evaluation) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Seller", "Status", "Plat", "Qty", "Score", "Message")

	for i, e := range evals {
		o := e.Order
		item := ""
		if o.Item != nil {
			item = truncate(o.Item.DisplayName(), 30)
			if o.Item.IsVaulted() {
				item += " (V)"
			}
		}
		if err := table.Append(
			strconv.Itoa(i+1),
			item,
			o.User.IngameName,
			string(o.User.Status),
			strconv.Itoa(o.Platinum),
			strconv.Itoa(o.Quantity),
			strconv.Itoa(e.Score),
			e.Message,
		); err != nil {
			return fmt.Errorf("notify.Console: append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("notify.Console: render: %w", err)
	}
	return nil
}

// truncate corta s a maxLen caracteres añadiendo "..." si es necesario.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
