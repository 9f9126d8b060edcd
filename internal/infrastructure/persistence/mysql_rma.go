package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// MySQLRMARecordRepository는 MySQL 기반의 RMARecordRepository 구현체입니다.
// RMA의 MAC 목록은 기존 시스템 호환을 위해 쉼표/파이프 연결 문자열로
// 저장되며, 포함 조회는 구분자를 정규화한 뒤 FIND_IN_SET으로 수행합니다.
type MySQLRMARecordRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLRMARecordRepository는 새로운 MySQLRMARecordRepository를 생성합니다
func NewMySQLRMARecordRepository(db *sql.DB, logger *logrus.Logger) interfaces.RMARecordRepository {
	return &MySQLRMARecordRepository{
		db:     db,
		logger: logger,
	}
}

const rmaSelectColumns = "id, rma_number, equipment, model, macaddresses, created_at"

// FindByMAC은 연결 문자열에 대상 MAC이 포함된 레코드들을 조회합니다
func (r *MySQLRMARecordRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.RMARecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rma_record
		WHERE FIND_IN_SET(?, UPPER(REPLACE(REPLACE(macaddresses, '|', ','), ' ', ''))) > 0
	`, rmaSelectColumns)

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

	return r.scanRecords(rows)
}

// GetByID는 ID로 레코드를 조회합니다
func (r *MySQLRMARecordRepository) GetByID(ctx context.Context, id int) (*entities.RMARecord, error) {
	query := fmt.Sprintf("SELECT %s FROM rma_record WHERE id = ?", rmaSelectColumns)

	var rec entities.RMARecord
	var model sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&rec.ID, &rec.RMANumber, &rec.Equipment, &model, &rec.MACs, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("RMA 레코드를 찾을 수 없음: ID=%d", id))
	}
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}

	if model.Valid {
		rec.Model = model.String
	}

	return &rec, nil
}

// List는 전체 레코드를 조회합니다
func (r *MySQLRMARecordRepository) List(ctx context.Context) ([]entities.RMARecord, error) {
	query := fmt.Sprintf("SELECT %s FROM rma_record ORDER BY created_at DESC", rmaSelectColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// Create는 레코드를 생성하고 생성된 ID를 반환합니다
func (r *MySQLRMARecordRepository) Create(ctx context.Context, record *entities.RMARecord) (int, error) {
	query := `
		INSERT INTO rma_record (rma_number, equipment, model, macaddresses, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query, record.RMANumber, record.Equipment, record.Model, record.MACs)
	if err != nil {
		return 0, errors.NewSystemError("RMA 레코드 생성 실패", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewSystemError("생성된 ID 확인 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"rma_id":     id,
		"rma_number": record.RMANumber,
	}).Info("RMA 레코드 생성 완료")

	return int(id), nil
}

// Update는 레코드를 수정합니다
func (r *MySQLRMARecordRepository) Update(ctx context.Context, record *entities.RMARecord) error {
	query := `
		UPDATE rma_record
		SET rma_number = ?, equipment = ?, model = ?, macaddresses = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		record.RMANumber, record.Equipment, record.Model, record.MACs, record.ID)
	if err != nil {
		return errors.NewSystemError("RMA 레코드 수정 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("RMA 레코드를 찾을 수 없음: ID=%d", record.ID))
	}

	return nil
}

// Delete는 레코드를 삭제합니다
func (r *MySQLRMARecordRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM rma_record WHERE id = ?", id)
	if err != nil {
		return errors.NewSystemError("RMA 레코드 삭제 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("RMA 레코드를 찾을 수 없음: ID=%d", id))
	}

	r.logger.WithField("rma_id", id).Info("RMA 레코드 삭제 완료")
	return nil
}

// Count는 전체 레코드 수를 반환합니다
func (r *MySQLRMARecordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rma_record").Scan(&count); err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	return count, nil
}

// scanRecords는 결과 행들을 RMARecord 목록으로 변환합니다
func (r *MySQLRMARecordRepository) scanRecords(rows *sql.Rows) ([]entities.RMARecord, error) {
	var results []entities.RMARecord

	for rows.Next() {
		var rec entities.RMARecord
		var model sql.NullString

		if err := rows.Scan(&rec.ID, &rec.RMANumber, &rec.Equipment, &model, &rec.MACs, &rec.CreatedAt); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		if model.Valid {
			rec.Model = model.String
		}

		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}
