package constants

// 시스템 경로 상수들
const (
	// 일일 리포트 출력 디렉토리
	DefaultReportDir = "/var/lib/equiptrack/reports"

	// 리포트 생성 상태 저장소 (SQLite)
	DefaultReportStateDB = "/var/lib/equiptrack/report_state.db"
)

// 리포트 관련 상수들
const (
	// 파일 권한
	ReportFilePermission = 0644

	// 리포트 파일명 날짜 포맷
	ReportDateFormat = "2006-01-02"
)

// 기본값 상수들
const (
	// 데이터베이스 기본값
	DefaultDBHost = "localhost"
	DefaultDBPort = "3306"
	DefaultDBName = "equiptrack"

	// 서버 기본값
	DefaultAPIPort    = "8090"
	DefaultHealthPort = "8080"
	DefaultLogLevel   = "info"

	// 리포트 스케줄러 기본값
	DefaultReportCheckInterval = "5m"
)
