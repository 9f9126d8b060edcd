package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// MySQLRecoveryReportRepository는 MySQL 기반의 RecoveryReportRepository 구현체입니다
type MySQLRecoveryReportRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLRecoveryReportRepository는 새로운 MySQLRecoveryReportRepository를 생성합니다
func NewMySQLRecoveryReportRepository(db *sql.DB, logger *logrus.Logger) interfaces.RecoveryReportRepository {
	return &MySQLRecoveryReportRepository{
		db:     db,
		logger: logger,
	}
}

const recoverySelectColumns = "id, equipment, problem, solution, responsible, macaddresses, created_at"

// FindByMAC은 MAC 배열에 대상 MAC이 포함된 리포트들을 조회합니다
func (r *MySQLRecoveryReportRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.RecoveryReport, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recovery_report
		WHERE JSON_CONTAINS(macaddresses, JSON_QUOTE(?))
	`, recoverySelectColumns)

	args := []interface{}{mac}
	if excludeID > 0 {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanReports(rows)
}

// GetByID는 ID로 리포트를 조회합니다
func (r *MySQLRecoveryReportRepository) GetByID(ctx context.Context, id int) (*entities.RecoveryReport, error) {
	query := fmt.Sprintf("SELECT %s FROM recovery_report WHERE id = ?", recoverySelectColumns)

	var rep entities.RecoveryReport
	var solution, responsible sql.NullString
	var macsJSON string

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&rep.ID, &rep.Equipment, &rep.Problem, &solution, &responsible, &macsJSON, &rep.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("복구 리포트를 찾을 수 없음: ID=%d", id))
	}
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}

	if solution.Valid {
		rep.Solution = solution.String
	}
	if responsible.Valid {
		rep.Responsible = responsible.String
	}
	rep.MACs, err = decodeMACs(macsJSON)
	if err != nil {
		return nil, err
	}

	return &rep, nil
}

// List는 전체 리포트를 조회합니다
func (r *MySQLRecoveryReportRepository) List(ctx context.Context) ([]entities.RecoveryReport, error) {
	query := fmt.Sprintf("SELECT %s FROM recovery_report ORDER BY created_at DESC", recoverySelectColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanReports(rows)
}

// ListByDate는 특정 날짜에 생성된 리포트들을 조회합니다
func (r *MySQLRecoveryReportRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.RecoveryReport, error) {
	query := fmt.Sprintf("SELECT %s FROM recovery_report WHERE DATE(created_at) = ? ORDER BY created_at", recoverySelectColumns)

	rows, err := r.db.QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanReports(rows)
}

// Create는 리포트를 생성하고 생성된 ID를 반환합니다
func (r *MySQLRecoveryReportRepository) Create(ctx context.Context, report *entities.RecoveryReport) (int, error) {
	macsJSON, err := encodeMACs(report.MACs)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO recovery_report (equipment, problem, solution, responsible, macaddresses, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		report.Equipment, report.Problem, report.Solution, report.Responsible, macsJSON)
	if err != nil {
		return 0, errors.NewSystemError("복구 리포트 생성 실패", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewSystemError("생성된 ID 확인 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"recovery_id": id,
		"mac_count":   len(report.MACs),
	}).Info("복구 리포트 생성 완료")

	return int(id), nil
}

// Update는 리포트를 수정합니다
func (r *MySQLRecoveryReportRepository) Update(ctx context.Context, report *entities.RecoveryReport) error {
	macsJSON, err := encodeMACs(report.MACs)
	if err != nil {
		return err
	}

	query := `
		UPDATE recovery_report
		SET equipment = ?, problem = ?, solution = ?, responsible = ?, macaddresses = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		report.Equipment, report.Problem, report.Solution, report.Responsible, macsJSON, report.ID)
	if err != nil {
		return errors.NewSystemError("복구 리포트 수정 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("복구 리포트를 찾을 수 없음: ID=%d", report.ID))
	}

	return nil
}

// Delete는 리포트를 삭제합니다
func (r *MySQLRecoveryReportRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM recovery_report WHERE id = ?", id)
	if err != nil {
		return errors.NewSystemError("복구 리포트 삭제 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("복구 리포트를 찾을 수 없음: ID=%d", id))
	}

	r.logger.WithField("recovery_id", id).Info("복구 리포트 삭제 완료")
	return nil
}

// Count는 전체 리포트 수를 반환합니다
func (r *MySQLRecoveryReportRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recovery_report").Scan(&count); err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	return count, nil
}

// scanReports는 결과 행들을 RecoveryReport 목록으로 변환합니다
func (r *MySQLRecoveryReportRepository) scanReports(rows *sql.Rows) ([]entities.RecoveryReport, error) {
	var results []entities.RecoveryReport

	for rows.Next() {
		var rep entities.RecoveryReport
		var solution, responsible sql.NullString
		var macsJSON string

		if err := rows.Scan(&rep.ID, &rep.Equipment, &rep.Problem, &solution, &responsible, &macsJSON, &rep.CreatedAt); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		if solution.Valid {
			rep.Solution = solution.String
		}
		if responsible.Valid {
			rep.Responsible = responsible.String
		}

		macs, err := decodeMACs(macsJSON)
		if err != nil {
			r.logger.WithError(err).WithField("recovery_id", rep.ID).Error("MAC 목록 역직렬화 실패")
			continue
		}
		rep.MACs = macs

		results = append(results, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}
