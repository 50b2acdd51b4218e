package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/salesvision-api/internal/report"
	"github.com/vfg2006/salesvision-api/internal/usecases/reporting"
	"github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	}
}

func GetReportSummary(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.GetReportSummary(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// DownloadReport devolve o artefato como anexo
func DownloadReport(service reporting.Reporter, kind report.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		artifact, err := service.ExportReport(r.Context(), kind, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Content)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact.Content)
	}
}
