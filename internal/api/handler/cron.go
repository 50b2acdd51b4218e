package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeReports = "reports"
	CronJobTypeAll     = "all"
)

// CronJob é o contrato mínimo de um serviço agendado disparável pela API
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ReportScheduleService CronJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var started bool
		switch cronType {
		case CronJobTypeReports, CronJobTypeAll:
			if services.ReportScheduleService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de relatórios agendados não disponível", nil)
				return
			}
			started = services.ReportScheduleService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: reports, all", nil)
			return
		}

		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Cron job já em execução"
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.ReportScheduleService != nil {
			status[CronJobTypeReports] = services.ReportScheduleService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
