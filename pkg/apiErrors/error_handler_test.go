package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{name: "Tipo de arquivo não suportado", code: ErrUnsupportedFileType, expectedStatus: http.StatusUnsupportedMediaType},
		{name: "Arquivo vazio", code: ErrEmptyFile, expectedStatus: http.StatusUnprocessableEntity},
		{name: "Arquivo grande demais", code: ErrFileTooLarge, expectedStatus: http.StatusRequestEntityTooLarge},
		{name: "Nada para exportar", code: ErrNothingToExport, expectedStatus: http.StatusUnprocessableEntity},
		{name: "Credenciais inválidas", code: ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "Código desconhecido vira 500", code: "XYZ_999", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"campo": "file"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)

	apiErr := FromError(errors.New("falhou"), ErrDatabaseOperation)
	assert.Equal(t, ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)
}
