package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// MySQLEquipmentRepository는 MySQL 기반의 EquipmentRepository 구현체입니다
type MySQLEquipmentRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLEquipmentRepository는 새로운 MySQLEquipmentRepository를 생성합니다
func NewMySQLEquipmentRepository(db *sql.DB, logger *logrus.Logger) interfaces.EquipmentRepository {
	return &MySQLEquipmentRepository{
		db:     db,
		logger: logger,
	}
}

// FindByMAC은 MAC 주소가 정확히 일치하는 장비들을 조회합니다
func (r *MySQLEquipmentRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.Equipment, error) {
	query := `
		SELECT id, name, model, macaddress, created_at
		FROM equipment
		WHERE UPPER(macaddress) = ?
	`
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

	var results []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}
		results = append(results, e)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}

// GetByID는 ID로 장비를 조회합니다
func (r *MySQLEquipmentRepository) GetByID(ctx context.Context, id int) (*entities.Equipment, error) {
	query := `
		SELECT id, name, model, macaddress, created_at
		FROM equipment
		WHERE id = ?
	`

	var e entities.Equipment
	var model sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &model, &e.MAC, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("장비를 찾을 수 없음: ID=%d", id))
	}
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	if model.Valid {
		e.Model = model.String
	}

	return &e, nil
}

// List는 전체 장비를 조회합니다
func (r *MySQLEquipmentRepository) List(ctx context.Context) ([]entities.Equipment, error) {
	query := `
		SELECT id, name, model, macaddress, created_at
		FROM equipment
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	var results []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}
		results = append(results, e)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}

// Create는 장비를 생성하고 생성된 ID를 반환합니다
func (r *MySQLEquipmentRepository) Create(ctx context.Context, equipment *entities.Equipment) (int, error) {
	query := `
		INSERT INTO equipment (name, model, macaddress, created_at)
		VALUES (?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query, equipment.Name, equipment.Model, equipment.MAC)
	if err != nil {
		return 0, errors.NewSystemError("장비 생성 실패", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewSystemError("생성된 ID 확인 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"equipment_id": id,
		"mac":          equipment.MAC,
	}).Info("장비 생성 완료")

	return int(id), nil
}

// Update는 장비를 수정합니다
func (r *MySQLEquipmentRepository) Update(ctx context.Context, equipment *entities.Equipment) error {
	query := `
		UPDATE equipment
		SET name = ?, model = ?, macaddress = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, equipment.Name, equipment.Model, equipment.MAC, equipment.ID)
	if err != nil {
		return errors.NewSystemError("장비 수정 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("장비를 찾을 수 없음: ID=%d", equipment.ID))
	}

	return nil
}

// Delete는 장비를 삭제합니다
func (r *MySQLEquipmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM equipment WHERE id = ?", id)
	if err != nil {
		return errors.NewSystemError("장비 삭제 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("장비를 찾을 수 없음: ID=%d", id))
	}

	r.logger.WithField("equipment_id", id).Info("장비 삭제 완료")
	return nil
}

// Count는 전체 장비 수를 반환합니다
func (r *MySQLEquipmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM equipment").Scan(&count); err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	return count, nil
}

// scanEquipment는 결과 행을 Equipment로 변환합니다
func scanEquipment(rows *sql.Rows) (entities.Equipment, error) {
	var e entities.Equipment
	var model sql.NullString

	if err := rows.Scan(&e.ID, &e.Name, &model, &e.MAC, &e.CreatedAt); err != nil {
		return entities.Equipment{}, err
	}
	if model.Valid {
		e.Model = model.String
	}
	return e, nil
}
