package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// Discord rechaza contenidos de más de 2000 caracteres.
const discordMaxContent = 2000

// Discord envía los mensajes a un webhook de Discord, agrupados en bloques
// que respetan el límite de longitud.
type Discord struct {
	webhookURL string
	client     *http.Client
}

// NewDiscord crea un notificador para el webhook dado, con timeout de 10s.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify envía un POST por bloque. Sin evaluaciones no envía nada.
func (d *Discord) Notify(ctx context.Context, evaluations []domain.Evaluation) error {
	lines := make([]string, len(evaluations))
	for i, e := range evaluations {
		lines[i] = e.Message
	}

	for _, chunk := range chunkLines(lines, discordMaxContent) {
		if err := d.send(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (d *Discord) send(ctx context.Context, content string) error {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: send request: %w", err)
	}
	defer resp.Body.Close()

	// Discord devuelve 204 No Content si todo fue bien.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("discord: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// chunkLines une líneas con "\n" en bloques de como mucho limit caracteres
// (runas, que es lo que cuenta Discord). Una línea más larga que limit se
// corta sin partir ninguna runa.
func chunkLines(lines []string, limit int) []string {
	var chunks []string
	var sb strings.Builder
	n := 0 // runas en sb

	for _, line := range lines {
		line = truncateRunes(line, limit)
		size := utf8.RuneCountInString(line)
		if n > 0 && n+1+size > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
			n = 0
		}
		if n > 0 {
			sb.WriteByte('\n')
			n++
		}
		sb.WriteString(line)
		n += size
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
