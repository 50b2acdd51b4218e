package log

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		validate func(t *testing.T, id string)
	}{
		{
			name:     "Reaproveita o ID enviado pelo cliente",
			incoming: "req-123",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "req-123", id)
			},
		},
		{
			name: "Gera UUID quando não há ID",
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
		{
			name:     "Descarta ID longo demais",
			incoming: strings.Repeat("x", 65),
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, id := WithCorrelationID(context.Background(), tt.incoming)

			tt.validate(t, id)
			assert.Equal(t, id, GetCorrelationID(ctx))
		})
	}
}

func TestGetCorrelationID_SemValor(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestSetup(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	level, ok := Setup("debug")
	assert.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, level)

	level, ok = Setup("verboso")
	assert.False(t, ok)
	assert.Equal(t, logrus.InfoLevel, level)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestWithFields_FiltraEmDesenvolvimento(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	l := L.WithFields(Fields{"filename": "vendas.csv", "remote_addr": "10.0.0.1"}).(*logger)

	assert.Contains(t, l.entry.Data, "filename")
	assert.NotContains(t, l.entry.Data, "remote_addr")
}

func TestWithFields_CompletoEmProducao(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	l := L.WithFields(Fields{"filename": "vendas.csv", "remote_addr": "10.0.0.1"}).(*logger)

	assert.Contains(t, l.entry.Data, "remote_addr")
}
