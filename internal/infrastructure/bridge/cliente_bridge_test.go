package bridge_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alianzanet/gestion-api/internal/infrastructure/bridge"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

var testLog = logger.New(logger.Config{Env: "development", Level: "error"})

func TestEnviar_AccionYTokenEnQueryYCuerpo(t *testing.T) {
	var gotAction, gotToken string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.URL.Query().Get("action")
		gotToken = r.URL.Query().Get("token")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := bridge.New(srv.URL, "token-secreto", 5*time.Second, testLog)

	err := c.Enviar(context.Background(), "sendReminder", map[string]any{
		"nombre": "MARIA URBINA",
		"correo": "maria@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "sendReminder", gotAction)
	assert.Equal(t, "token-secreto", gotToken)
	assert.Equal(t, "token-secreto", gotBody["token"], "el token también viaja dentro del cuerpo")
	assert.Equal(t, "MARIA URBINA", gotBody["nombre"])
}

func TestEnviar_ErrorDelPuente(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"destinatario desconocido"}`))
	}))
	defer srv.Close()

	c := bridge.New(srv.URL, "t", 5*time.Second, testLog)

	err := c.Enviar(context.Background(), "sendReminder", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destinatario desconocido")
}

func TestEnviar_HTTPNoOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := bridge.New(srv.URL, "t", 5*time.Second, testLog)

	err := c.Enviar(context.Background(), "sendAdminReport", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestEnviar_SinURLConfigurada(t *testing.T) {
	c := bridge.New("", "t", 5*time.Second, testLog)

	err := c.Enviar(context.Background(), "sendReminder", map[string]any{})
	assert.Error(t, err)
}

func TestNulo_DescartaSinError(t *testing.T) {
	n := bridge.NewNulo(testLog)

	err := n.Enviar(context.Background(), "sendReminder", map[string]any{"nombre": "X"})
	assert.NoError(t, err)
}
