package persistence

import (
	"context"
	"database/sql"
	"time"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MySQLProductionRepository는 MySQL 기반의 ProductionRepository 구현체입니다.
// 수량과 근무 시간은 정밀도 손실을 피하기 위해 DECIMAL 컬럼에 저장되고
// 문자열로 스캔됩니다.
type MySQLProductionRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLProductionRepository는 새로운 MySQLProductionRepository를 생성합니다
func NewMySQLProductionRepository(db *sql.DB, logger *logrus.Logger) interfaces.ProductionRepository {
	return &MySQLProductionRepository{
		db:     db,
		logger: logger,
	}
}

// Create는 생산 실적을 생성하고 생성된 ID를 반환합니다
func (r *MySQLProductionRepository) Create(ctx context.Context, entry *entities.ProductionEntry) (int, error) {
	query := `
		INSERT INTO production_entry (employee, shift_date, quantity, hours_worked, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.Employee,
		entry.ShiftDate.Format("2006-01-02"),
		entry.Quantity.String(),
		entry.HoursWorked.String(),
	)
	if err != nil {
		return 0, errors.NewSystemError("생산 실적 생성 실패", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewSystemError("생성된 ID 확인 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"entry_id": id,
		"employee": entry.Employee,
	}).Info("생산 실적 기록 완료")

	return int(id), nil
}

// ListByDate는 특정 근무일의 실적들을 조회합니다
func (r *MySQLProductionRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.ProductionEntry, error) {
	query := `
		SELECT id, employee, shift_date, quantity, hours_worked, created_at
		FROM production_entry
		WHERE shift_date = ?
		ORDER BY employee
	`

	rows, err := r.db.QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	var results []entities.ProductionEntry
	for rows.Next() {
		var p entities.ProductionEntry
		var quantity, hours string

		if err := rows.Scan(&p.ID, &p.Employee, &p.ShiftDate, &quantity, &hours, &p.CreatedAt); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		p.Quantity, err = decimal.NewFromString(quantity)
		if err != nil {
			r.logger.WithError(err).WithField("entry_id", p.ID).Error("수량 파싱 실패")
			continue
		}
		p.HoursWorked, err = decimal.NewFromString(hours)
		if err != nil {
			r.logger.WithError(err).WithField("entry_id", p.ID).Error("근무 시간 파싱 실패")
			continue
		}

		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}

// Count는 전체 실적 수를 반환합니다
func (r *MySQLProductionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM production_entry").Scan(&count); err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	return count, nil
}
