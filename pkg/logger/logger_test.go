package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/backoffice-api/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"cualquier-cosa", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		l := logger.New(logger.Config{Env: "production", Level: tc.level})
		assert.Equal(t, tc.want, l.Zerolog().GetLevel(), "nivel %q", tc.level)
	}
}

func TestNew_EstampaNombreDeServicio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{
		Env:     "production",
		Level:   "info",
		Service: "backoffice-api",
		Writer:  &buf,
	})

	l.Info().Msg("arranque")

	out := buf.String()
	assert.Contains(t, out, `"service":"backoffice-api"`)
	assert.Contains(t, out, `"message":"arranque"`)
}

func TestNew_SinServicioNoEstampaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Writer: &buf})

	l.Info().Msg("arranque")

	assert.NotContains(t, buf.String(), `"service"`)
}
