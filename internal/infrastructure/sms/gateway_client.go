package sms

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/novuscrm/novus-api/internal/application/comms"
	"github.com/novuscrm/novus-api/pkg/config"
)

var _ comms.SMSSender = (*GatewayClient)(nil)

// GatewayClient envía SMS vía la API HTTP de la pasarela (POST form-encoded).
// Implementa el puerto comms.SMSSender.
type GatewayClient struct {
	cfg    config.SMSConfig
	client *http.Client
}

// NewGatewayClient construye el cliente con un timeout corto: un SMS que tarda
// más de 15s se considera fallido.
func NewGatewayClient(cfg config.SMSConfig) *GatewayClient {
	return &GatewayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send envía un SMS de texto y devuelve el cuerpo crudo de la respuesta de
// la pasarela (se guarda tal cual en el registro de actividad).
func (c *GatewayClient) Send(number, message string) (string, error) {
	form := url.Values{}
	form.Set("api_key", c.cfg.APIKey)
	form.Set("type", "text")
	form.Set("number", number)
	form.Set("senderid", c.cfg.SenderID)
	form.Set("message", message)

	resp, err := c.client.Post(c.cfg.APIURL, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("llamar pasarela SMS: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("leer respuesta de pasarela SMS: %w", err)
	}
	if resp.StatusCode >= 400 {
		return string(body), fmt.Errorf("pasarela SMS respondió %d", resp.StatusCode)
	}
	return string(body), nil
}
