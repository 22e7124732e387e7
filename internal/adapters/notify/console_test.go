package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/adapters/notify"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

func makeEval(seller string, platinum int, message string) domain.Evaluation {
	vaulted := true
	order := domain.Order{
		Platinum:  platinum,
		Quantity:  2,
		OrderType: domain.OrderTypeSell,
		User:      domain.User{IngameName: seller, Status: domain.UserStatusInGame},
	}.WithItem(domain.Item{URLName: "new_loka_sigil", ItemName: "New Loka Sigil", Vaulted: &vaulted})
	return domain.Evaluation{Order: order, Score: -platinum, Message: message}
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	err := n.Notify(context.Background(), []domain.Evaluation{
		makeEval("a", 5, "first message"),
		makeEval("b", 10, "second message"),
	})
	require.NoError(t, err)

	assert.Equal(t, "first message\nsecond message\n", buf.String())
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	err := n.Notify(context.Background(), []domain.Evaluation{makeEval("TennoSeller", 7, "buy it")})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "1 orders")
	assert.Contains(t, out, "New Loka Sigil (V)")
	assert.Contains(t, out, "TennoSeller")
	assert.Contains(t, out, "ingame")
	assert.Contains(t, out, "-7")
	assert.Contains(t, out, "buy it")
}

func TestConsole_Notify_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, n.Notify(context.Background(), nil))
	assert.Contains(t, buf.String(), "no orders found")
}

func TestConsole_Notify_LongItemNameTruncated(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	e := makeEval("a", 1, "m")
	e.Order.Item.ItemName = strings.Repeat("A", 50)

	require.NoError(t, n.Notify(context.Background(), []domain.Evaluation{e}))
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("A", 50))
}

func TestDiscord_Notify(t *testing.T) {
	var mu sync.Mutex
	var contents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		contents = append(contents, body["content"])
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := notify.NewDiscord(srv.URL)
	err := d.Notify(context.Background(), []domain.Evaluation{
		makeEval("a", 1, "line one"),
		makeEval("b", 2, "line two"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"line one\nline two"}, contents)
}

func TestDiscord_Notify_ChunksLongOutput(t *testing.T) {
	var mu sync.Mutex
	var contents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		contents = append(contents, body["content"])
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	line := strings.Repeat("x", 150)
	evals := make([]domain.Evaluation, 30) // 30*151 > 2000
	for i := range evals {
		evals[i] = makeEval("s", i, line)
	}

	require.NoError(t, notify.NewDiscord(srv.URL).Notify(context.Background(), evals))

	require.Greater(t, len(contents), 1)
	total := 0
	for _, c := range contents {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 2000)
		total += strings.Count(c, line)
	}
	assert.Equal(t, 30, total, "no se pierde ninguna línea")
}

func TestDiscord_Notify_CountsCharactersNotBytes(t *testing.T) {
	var mu sync.Mutex
	var contents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		contents = append(contents, body["content"])
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	// "é" ocupa 2 bytes: 1500 caracteres caben en un mensaje aunque sean 3000 bytes.
	short := strings.Repeat("é", 1500)
	long := strings.Repeat("é", 2500)
	evals := []domain.Evaluation{
		makeEval("a", 1, short),
		makeEval("b", 2, short),
		makeEval("c", 3, long),
	}

	require.NoError(t, notify.NewDiscord(srv.URL).Notify(context.Background(), evals))

	require.Len(t, contents, 3)
	assert.Equal(t, short, contents[0])
	assert.Equal(t, short, contents[1])
	assert.Equal(t, 2000, utf8.RuneCountInString(contents[2]), "se corta a 2000 caracteres")
	for _, c := range contents {
		assert.True(t, utf8.ValidString(c), "no se parte ninguna runa")
	}
}

func TestDiscord_Notify_NothingToSend(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	require.NoError(t, notify.NewDiscord(srv.URL).Notify(context.Background(), nil))
	assert.False(t, called)
}

func TestDiscord_Notify_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid webhook"))
	}))
	defer srv.Close()

	err := notify.NewDiscord(srv.URL).Notify(context.Background(), []domain.Evaluation{makeEval("a", 1, "m")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid webhook")
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, []domain.Evaluation) error { return f.err }

func TestMulti_NotifiesAllAndJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	m := notify.Multi{
		failingNotifier{err: boom},
		notify.NewConsoleWriter(&buf, false),
	}

	err := m.Notify(context.Background(), []domain.Evaluation{makeEval("a", 1, "still printed")})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "still printed")
}
