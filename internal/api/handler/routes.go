package handler

import (
	"net/http"

	"github.com/vfg2006/salesvision-api/internal/api/handler/router"
	"github.com/vfg2006/salesvision-api/internal/report"
	"github.com/vfg2006/salesvision-api/internal/usecases/authenticating"
	"github.com/vfg2006/salesvision-api/internal/usecases/reporting"
	"github.com/vfg2006/salesvision-api/internal/usecases/uploading"
	"github.com/vfg2006/salesvision-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/signup",
			Method:  http.MethodPost,
			Handler: SignUp(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Uploads(service uploading.Uploader, maxBytes int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/uploads/preview",
			Method:      http.MethodPost,
			Handler:     PreviewUpload(service, maxBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.Uploaders()},
		},
		{
			Path:        "/v1/uploads",
			Method:      http.MethodPost,
			Handler:     CreateUpload(service, maxBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.Uploaders()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/summary",
			Method:      http.MethodGet,
			Handler:     GetReportSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/pdf",
			Method:      http.MethodGet,
			Handler:     DownloadReport(service, report.KindPDF),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/xlsx",
			Method:      http.MethodGet,
			Handler:     DownloadReport(service, report.KindWorkbook),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
