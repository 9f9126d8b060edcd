package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"equiptrack/internal/domain/constants"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteReportStateStore는 일일 리포트 생성 상태를 로컬 SQLite 파일에
// 기록하는 ReportStateStore 구현체입니다. 메인 저장소와 분리되어 있어
// MySQL 장애 중에도 "오늘 이미 실행했는지" 판단이 가능합니다.
type SQLiteReportStateStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewSQLiteReportStateStore는 상태 파일을 열고 스키마를 준비합니다
func NewSQLiteReportStateStore(path string, fs interfaces.FileSystem, logger *logrus.Logger) (*SQLiteReportStateStore, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewSystemError("상태 디렉토리 생성 실패", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.NewSystemError("상태 저장소 열기 실패", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS report_runs (
			report_date TEXT PRIMARY KEY,
			output_path TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewSystemError("상태 스키마 초기화 실패", err)
	}

	return &SQLiteReportStateStore{db: db, logger: logger}, nil
}

// WasGenerated는 해당 날짜의 리포트가 이미 생성되었는지 확인합니다
func (s *SQLiteReportStateStore) WasGenerated(ctx context.Context, date time.Time) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM report_runs WHERE report_date = ?",
		date.Format(constants.ReportDateFormat),
	).Scan(&count)
	if err != nil {
		return false, errors.NewSystemError("상태 조회 실패", err)
	}
	return count > 0, nil
}

// MarkGenerated는 해당 날짜의 리포트 생성을 기록합니다
func (s *SQLiteReportStateStore) MarkGenerated(ctx context.Context, date time.Time, path string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO report_runs (report_date, output_path, generated_at) VALUES (?, ?, ?)",
		date.Format(constants.ReportDateFormat), path, time.Now(),
	)
	if err != nil {
		return errors.NewSystemError("상태 기록 실패", err)
	}

	s.logger.WithFields(logrus.Fields{
		"report_date": date.Format(constants.ReportDateFormat),
		"output_path": path,
	}).Info("일일 리포트 생성 기록 완료")

	return nil
}

// Close는 저장소 연결을 정리합니다
func (s *SQLiteReportStateStore) Close() error {
	return s.db.Close()
}
