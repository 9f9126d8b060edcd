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

// MySQLDefectReportRepository는 MySQL 기반의 DefectReportRepository 구현체입니다
type MySQLDefectReportRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLDefectReportRepository는 새로운 MySQLDefectReportRepository를 생성합니다
func NewMySQLDefectReportRepository(db *sql.DB, logger *logrus.Logger) interfaces.DefectReportRepository {
	return &MySQLDefectReportRepository{
		db:     db,
		logger: logger,
	}
}

const defectSelectColumns = "id, equipment, model, quantity, macaddresses, created_at"

// FindByMAC은 MAC 배열에 대상 MAC이 포함된 리포트들을 조회합니다
func (r *MySQLDefectReportRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.DefectReport, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM defect_report
		WHERE JSON_CONTAINS(macaddresses, JSON_QUOTE(?))
	`, defectSelectColumns)

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
func (r *MySQLDefectReportRepository) GetByID(ctx context.Context, id int) (*entities.DefectReport, error) {
	query := fmt.Sprintf("SELECT %s FROM defect_report WHERE id = ?", defectSelectColumns)

	var d entities.DefectReport
	var model sql.NullString
	var macsJSON string

	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Equipment, &model, &d.Quantity, &macsJSON, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("불량 리포트를 찾을 수 없음: ID=%d", id))
	}
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}

	if model.Valid {
		d.Model = model.String
	}
	d.MACs, err = decodeMACs(macsJSON)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// List는 전체 리포트를 조회합니다
func (r *MySQLDefectReportRepository) List(ctx context.Context) ([]entities.DefectReport, error) {
	query := fmt.Sprintf("SELECT %s FROM defect_report ORDER BY created_at DESC", defectSelectColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanReports(rows)
}

// ListByDate는 특정 날짜에 생성된 리포트들을 조회합니다
func (r *MySQLDefectReportRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.DefectReport, error) {
	query := fmt.Sprintf("SELECT %s FROM defect_report WHERE DATE(created_at) = ? ORDER BY created_at", defectSelectColumns)

	rows, err := r.db.QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanReports(rows)
}

// Create는 리포트를 생성하고 생성된 ID를 반환합니다
func (r *MySQLDefectReportRepository) Create(ctx context.Context, report *entities.DefectReport) (int, error) {
	macsJSON, err := encodeMACs(report.MACs)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO defect_report (equipment, model, quantity, macaddresses, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query, report.Equipment, report.Model, report.Quantity, macsJSON)
	if err != nil {
		return 0, errors.NewSystemError("불량 리포트 생성 실패", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewSystemError("생성된 ID 확인 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"defect_id": id,
		"quantity":  report.Quantity,
	}).Info("불량 리포트 생성 완료")

	return int(id), nil
}

// Update는 리포트를 수정합니다
func (r *MySQLDefectReportRepository) Update(ctx context.Context, report *entities.DefectReport) error {
	macsJSON, err := encodeMACs(report.MACs)
	if err != nil {
		return err
	}

	query := `
		UPDATE defect_report
		SET equipment = ?, model = ?, quantity = ?, macaddresses = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, report.Equipment, report.Model, report.Quantity, macsJSON, report.ID)
	if err != nil {
		return errors.NewSystemError("불량 리포트 수정 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("불량 리포트를 찾을 수 없음: ID=%d", report.ID))
	}

	return nil
}

// Delete는 리포트를 삭제합니다
func (r *MySQLDefectReportRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM defect_report WHERE id = ?", id)
	if err != nil {
		return errors.NewSystemError("불량 리포트 삭제 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("불량 리포트를 찾을 수 없음: ID=%d", id))
	}

	r.logger.WithField("defect_id", id).Info("불량 리포트 삭제 완료")
	return nil
}

// Count는 전체 리포트 수를 반환합니다
func (r *MySQLDefectReportRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM defect_report").Scan(&count); err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	return count, nil
}

// scanReports는 결과 행들을 DefectReport 목록으로 변환합니다
func (r *MySQLDefectReportRepository) scanReports(rows *sql.Rows) ([]entities.DefectReport, error) {
	var results []entities.DefectReport

	for rows.Next() {
		var d entities.DefectReport
		var model sql.NullString
		var macsJSON string

		if err := rows.Scan(&d.ID, &d.Equipment, &model, &d.Quantity, &macsJSON, &d.CreatedAt); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		if model.Valid {
			d.Model = model.String
		}

		macs, err := decodeMACs(macsJSON)
		if err != nil {
			r.logger.WithError(err).WithField("defect_id", d.ID).Error("MAC 목록 역직렬화 실패")
			continue
		}
		d.MACs = macs

		results = append(results, d)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}
