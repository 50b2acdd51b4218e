package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/internal/usecases/uploading"
	"github.com/vfg2006/salesvision-api/pkg/apiErrors"
	"github.com/vfg2006/salesvision-api/pkg/middleware"
)

const (
	uploadFormField     = "file"
	defaultUploadMaxMiB = 10
)

// readUploadedFile limita o corpo da requisição e devolve o arquivo do campo "file".
// Escreve a resposta de erro e retorna ok=false quando não há arquivo utilizável.
func readUploadedFile(w http.ResponseWriter, r *http.Request, maxBytes int64) (multipart.File, *multipart.FileHeader, bool) {
	if maxBytes <= 0 {
		maxBytes = defaultUploadMaxMiB << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo maior que o limite permitido", map[string]any{"max_bytes": maxBytes})
			return nil, nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição multipart inválida", nil)
		return nil, nil, false
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo \"file\" é obrigatório", nil)
		return nil, nil, false
	}

	return file, header, true
}

// PreviewUpload mostra as primeiras linhas do arquivo sem gravar nada
func PreviewUpload(service uploading.Uploader, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, ok := readUploadedFile(w, r, maxBytes)
		if !ok {
			return
		}
		defer file.Close()

		preview, err := service.Preview(header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, preview)
	}
}

// CreateUpload importa o arquivo inteiro para o usuário autenticado
func CreateUpload(service uploading.Uploader, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		file, header, ok := readUploadedFile(w, r, maxBytes)
		if !ok {
			return
		}
		defer file.Close()

		logrus.WithFields(logrus.Fields{
			"user_id":  userClaims.UserID,
			"filename": header.Filename,
			"size":     header.Size,
		}).Info("INIT - CreateUpload")

		result, err := service.Upload(r.Context(), userClaims.UserID, header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}
