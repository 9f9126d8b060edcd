package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewRouter는 API 라우팅 테이블을 구성합니다
func NewRouter(h *Handler, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/validate-mac", h.ValidateMAC)
	mux.HandleFunc("GET /api/conflicts", h.Conflicts)
	mux.HandleFunc("POST /api/conflicts/resolve", h.ResolveConflict)

	// 등록 핸들러는 본문의 id가 0보다 크면 수정으로 처리하므로
	// POST와 PUT을 같은 핸들러에 연결합니다
	mux.HandleFunc("POST /api/equipment", h.RegisterEquipment)
	mux.HandleFunc("PUT /api/equipment", h.RegisterEquipment)
	mux.HandleFunc("GET /api/equipment", h.ListEquipment)
	mux.HandleFunc("GET /api/equipment/{id}", h.GetEquipment)

	mux.HandleFunc("POST /api/boxes", h.RegisterBox)
	mux.HandleFunc("PUT /api/boxes", h.RegisterBox)
	mux.HandleFunc("GET /api/boxes", h.ListBoxes)

	mux.HandleFunc("POST /api/defects", h.RegisterDefect)
	mux.HandleFunc("PUT /api/defects", h.RegisterDefect)
	mux.HandleFunc("GET /api/defects", h.ListDefects)

	mux.HandleFunc("POST /api/recoveries", h.RegisterRecovery)
	mux.HandleFunc("PUT /api/recoveries", h.RegisterRecovery)
	mux.HandleFunc("GET /api/recoveries", h.ListRecoveries)

	mux.HandleFunc("POST /api/rma", h.RegisterRMA)
	mux.HandleFunc("PUT /api/rma", h.RegisterRMA)
	mux.HandleFunc("GET /api/rma", h.ListRMA)

	mux.HandleFunc("POST /api/production", h.RecordProduction)
	mux.HandleFunc("GET /api/dashboard", h.Dashboard)

	return requestLogging(mux, logger)
}

// requestLogging은 요청 메서드, 경로, 처리 시간을 로깅하는 미들웨어입니다
func requestLogging(next http.Handler, logger *logrus.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		logger.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(started).String(),
		}).Debug("HTTP 요청 처리됨")
	})
}
