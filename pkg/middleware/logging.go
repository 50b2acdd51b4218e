package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/salesvision-api/pkg/apiErrors"
	"github.com/vfg2006/salesvision-api/pkg/log"
)

// HeaderCorrelationID devolve ao cliente o ID usado nos logs da requisição
const HeaderCorrelationID = "X-Correlation-ID"

const (
	slowRequestThreshold = 500 * time.Millisecond
	// Exportações e importações grandes demoram mais; não são lentas até este limite
	slowTransferThreshold = 5 * time.Second
)

// Rotas de verificação de saúde; registradas só em debug
var quietPaths = map[string]bool{
	"/healthcheck": true,
}

// LoggingMiddleware registra início e fim de cada requisição com o ID de correlação
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Reaproveita o ID de correlação do cliente ou gera um novo
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(HeaderCorrelationID))
			r = r.WithContext(ctx)
			w.Header().Set(HeaderCorrelationID, correlationID)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()
			quiet := quietPaths[r.URL.Path]

			if !quiet {
				log.L.WithFields(requestFields(r, correlationID)).Info("→ Requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			logCompletion(r, lrw, correlationID, time.Since(startTime), quiet)
		})
	}
}

func requestFields(r *http.Request, correlationID string) log.Fields {
	if log.IsDevelopment() {
		return log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}
	}

	return log.Fields{
		"correlation_id": correlationID,
		"remote_addr":    r.RemoteAddr,
		"method":         r.Method,
		"path":           r.URL.Path,
		"query":          r.URL.RawQuery,
		"user_agent":     r.UserAgent(),
		"content_type":   r.Header.Get("Content-Type"),
		"content_length": r.ContentLength,
	}
}

func logCompletion(r *http.Request, lrw *loggingResponseWriter, correlationID string, elapsed time.Duration, quiet bool) {
	fields := log.Fields{
		"correlation_id": correlationID,
		"method":         r.Method,
		"path":           r.URL.Path,
		"status_code":    lrw.statusCode,
		"duration_ms":    elapsed.Milliseconds(),
		"response_bytes": lrw.bytesWritten,
	}
	logger := log.L.WithFields(fields)

	statusSymbol := "✓"
	if lrw.statusCode >= 400 {
		statusSymbol = "✗"
	}
	msg := fmt.Sprintf("%s Requisição finalizada em %s", statusSymbol, formatDuration(elapsed))

	switch {
	case lrw.statusCode >= 500:
		logger.Error(msg)
	case lrw.statusCode >= 400:
		logger.Warn(msg)
	case quiet:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}

	threshold := slowRequestThreshold
	if isTransfer(r) {
		threshold = slowTransferThreshold
	}
	if elapsed > threshold {
		logger.Warnf("⚠ Requisição lenta: %s %s (%dms)", r.Method, r.URL.Path, elapsed.Milliseconds())
	}
}

// isTransfer indica importações e downloads de relatórios
func isTransfer(r *http.Request) bool {
	switch r.URL.Path {
	case "/v1/uploads", "/v1/uploads/preview", "/v1/reports/pdf", "/v1/reports/xlsx":
		return true
	}
	return false
}

// formatDuration formata a duração de forma humana
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code e o tamanho da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += n
	return n, err
}

// LogPanicMiddleware converte panics em 500 padronizado e registra a pilha
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackTrace := string(stack[:runtime.Stack(stack, false)])

					logger := log.ForContext(r.Context()).WithFields(log.Fields{
						"error":  err,
						"method": r.Method,
						"path":   r.URL.Path,
					})
					logger.Error("❌ PANIC na aplicação")

					if log.IsDevelopment() {
						fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
					} else {
						logger.WithField("stack_trace", stackTrace).Error("Stack trace do erro")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
