package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/parts-tracker/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "parts-tracker"})
	assert.Equal(t, zerolog.DebugLevel, l.Zerolog().GetLevel())
}

// Nivel desconocido o vacío cae a info.
func TestNew_NivelDesconocidoCaeAInfo(t *testing.T) {
	l := logger.New(logger.Config{Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())

	l = logger.New(logger.Config{})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
