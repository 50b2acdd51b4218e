package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/usecases/authenticating"
	"github.com/vfg2006/salesvision-api/internal/usecases/reporting"
	"github.com/vfg2006/salesvision-api/internal/usecases/uploading"
	"github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros tipados dos casos de uso para a resposta padronizada
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		authErr   *authenticating.AuthError
		uploadErr *uploading.UploadError
		reportErr *reporting.ReportError
	)

	switch {
	case errors.As(err, &authErr):
		var details any
		if authErr.UserID != "" {
			details = map[string]any{"user_id": authErr.UserID}
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)
	case errors.As(err, &uploadErr):
		apiErrors.WriteError(w, uploadErr.Code, uploadErr.Error(), map[string]any{"filename": uploadErr.Filename})
	case errors.As(err, &reportErr):
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
	default:
		logrus.WithError(err).Error("Erro não mapeado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}

// parseFilter lê date_range e category da query; ausentes valem "all"
func parseFilter(r *http.Request) (domain.FilterSpec, error) {
	query := r.URL.Query()

	dateRange, err := domain.ParseDateRange(query.Get("date_range"))
	if err != nil {
		return domain.FilterSpec{}, err
	}

	category := query.Get("category")
	if category == "" {
		category = domain.CategoryAll
	}

	return domain.FilterSpec{DateRange: dateRange, Category: category}, nil
}
