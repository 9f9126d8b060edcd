package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MAC 검증 관련 메트릭
	MacValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_mac_validations_total",
			Help: "Total number of MAC uniqueness validations performed",
		},
		[]string{"result"}, // accepted, rejected, indeterminate
	)

	MacConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_mac_conflicts_total",
			Help: "Total number of MAC conflicts detected per collection",
		},
		[]string{"collection"},
	)

	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "equiptrack_mac_validation_duration_seconds",
			Help:    "Time spent validating a MAC list",
			Buckets: prometheus.DefBuckets,
		},
	)

	// 충돌 해소 관련 메트릭
	ConflictResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_conflict_resolutions_total",
			Help: "Total number of conflict resolution actions",
		},
		[]string{"action", "status"}, // remove_mac/delete_record, success/failed
	)

	// 레코드 등록 관련 메트릭
	RecordsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_records_registered_total",
			Help: "Total number of records registered per collection",
		},
		[]string{"collection", "status"}, // success, rejected, failed
	)

	// 일일 리포트 관련 메트릭
	ReportCycleCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "equiptrack_report_cycles_total",
			Help: "Total number of report scheduler cycles executed",
		},
	)

	ReportGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "equiptrack_report_generation_duration_seconds",
			Help:    "Time spent generating the daily report",
			Buckets: prometheus.DefBuckets,
		},
	)

	// 데이터베이스 상태
	DBConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "equiptrack_db_connection_status",
			Help: "Database connection status (1 = connected, 0 = disconnected)",
		},
	)

	// 에러 메트릭
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, conflict, indeterminate, system, not_found
	)

	// 시스템 정보
	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "equiptrack_service_info",
			Help: "Service information",
		},
		[]string{"version", "hostname"},
	)

	// 백오프 레벨 (리포트 스케줄러)
	BackoffLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "equiptrack_scheduler_backoff_level",
			Help: "Current exponential backoff level of the report scheduler",
		},
	)
)

// RecordValidation은 MAC 검증 결과를 기록합니다
func RecordValidation(result string, duration float64) {
	MacValidationsTotal.WithLabelValues(result).Inc()
	ValidationDuration.Observe(duration)
}

// RecordConflict는 컬렉션별 충돌 탐지를 기록합니다
func RecordConflict(collection string) {
	MacConflictsTotal.WithLabelValues(collection).Inc()
}

// RecordResolution은 충돌 해소 액션을 기록합니다
func RecordResolution(action, status string) {
	ConflictResolutionsTotal.WithLabelValues(action, status).Inc()
}

// RecordRegistration은 레코드 등록 결과를 기록합니다
func RecordRegistration(collection, status string) {
	RecordsRegistered.WithLabelValues(collection, status).Inc()
}

// RecordReportCycle은 리포트 스케줄러 사이클을 기록합니다
func RecordReportCycle() {
	ReportCycleCount.Inc()
}

// RecordReportGeneration은 리포트 생성 시간을 기록합니다
func RecordReportGeneration(duration float64) {
	ReportGenerationDuration.Observe(duration)
}

// SetDBConnectionStatus는 데이터베이스 연결 상태를 설정합니다
func SetDBConnectionStatus(connected bool) {
	if connected {
		DBConnectionStatus.Set(1)
	} else {
		DBConnectionStatus.Set(0)
	}
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetServiceInfo는 서비스 정보를 설정합니다
func SetServiceInfo(version, hostname string) {
	ServiceInfo.WithLabelValues(version, hostname).Set(1)
}

// SetBackoffLevel은 스케줄러 백오프 레벨을 설정합니다
func SetBackoffLevel(level float64) {
	BackoffLevel.Set(level)
}
