package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelPorDefectoEsInfo(t *testing.T) {
	l := New(Config{Env: "production", Level: "no-existe"})
	assert.Equal(t, zerolog.InfoLevel, l.zl.GetLevel())
}

func TestNew_NivelExplicito(t *testing.T) {
	l := New(Config{Env: "production", Level: "debug"})
	assert.Equal(t, zerolog.DebugLevel, l.zl.GetLevel())
}

func TestLogger_CampoServiceEnCadaLinea(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "novus-api"})
	l.zl = l.zl.Output(&buf)

	l.Info().Msg("arranque")

	assert.Contains(t, buf.String(), `"service":"novus-api"`)
}

func TestLogger_SinServiceNoEmiteElCampo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info"})
	l.zl = l.zl.Output(&buf)

	l.Info().Msg("arranque")

	assert.NotContains(t, buf.String(), `"service"`)
}
