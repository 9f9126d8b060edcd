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

// MySQLInventoryBoxRepository는 MySQL 기반의 InventoryBoxRepository 구현체입니다
type MySQLInventoryBoxRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLInventoryBoxRepository는 새로운 MySQLInventoryBoxRepository를 생성합니다
func NewMySQLInventoryBoxRepository(db *sql.DB, logger *logrus.Logger) interfaces.InventoryBoxRepository {
	return &MySQLInventoryBoxRepository{
		db:     db,
		logger: logger,
	}
}

// FindByMAC은 MAC 배열에 대상 MAC이 포함된 박스들을 조회합니다
func (r *MySQLInventoryBoxRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.InventoryBox, error) {
	query := `
		SELECT id, box_number, equipment_name, model, macaddresses, created_at
		FROM inventory_box
		WHERE JSON_CONTAINS(macaddresses, JSON_QUOTE(?))
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

	return r.scanBoxes(rows)
}

// GetByID는 ID로 박스를 조회합니다
func (r *MySQLInventoryBoxRepository) GetByID(ctx context.Context, id int) (*entities.InventoryBox, error) {
	query := `
		SELECT id, box_number, equipment_name, model, macaddresses, created_at
		FROM inventory_box
		WHERE id = ?
	`

	var b entities.InventoryBox
	var model sql.NullString
	var macsJSON string

	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.BoxNumber, &b.EquipmentName, &model, &macsJSON, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("재고 박스를 찾을 수 없음: ID=%d", id))
	}
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}

	if model.Valid {
		b.Model = model.String
	}
	b.MACs, err = decodeMACs(macsJSON)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// List는 전체 박스를 조회합니다
func (r *MySQLInventoryBoxRepository) List(ctx context.Context) ([]entities.InventoryBox, error) {
	query := `
		SELECT id, box_number, equipment_name, model, macaddresses, created_at
		FROM inventory_box
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	return r.scanBoxes(rows)
}

// Create는 박스를 생성하고 생성된 ID를 반환합니다
func (r *MySQLInventoryBoxRepository) Create(ctx context.Context, box *entities.InventoryBox) (int, error) {
	macsJSON, err := encodeMACs(box.MACs)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO inventory_box (box_number, equipment_name, model, macaddresses, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query, box.BoxNumber, box.EquipmentName, box.Model, macsJSON)
	if err != nil {
		return 0, errors.NewSystemError("재고 박스 생성 실패", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewSystemError("생성된 ID 확인 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"box_id":    id,
		"mac_count": len(box.MACs),
	}).Info("재고 박스 생성 완료")

	return int(id), nil
}

// Update는 박스를 수정합니다
func (r *MySQLInventoryBoxRepository) Update(ctx context.Context, box *entities.InventoryBox) error {
	macsJSON, err := encodeMACs(box.MACs)
	if err != nil {
		return err
	}

	query := `
		UPDATE inventory_box
		SET box_number = ?, equipment_name = ?, model = ?, macaddresses = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, box.BoxNumber, box.EquipmentName, box.Model, macsJSON, box.ID)
	if err != nil {
		return errors.NewSystemError("재고 박스 수정 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("재고 박스를 찾을 수 없음: ID=%d", box.ID))
	}

	return nil
}

// Delete는 박스를 삭제합니다
func (r *MySQLInventoryBoxRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM inventory_box WHERE id = ?", id)
	if err != nil {
		return errors.NewSystemError("재고 박스 삭제 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("재고 박스를 찾을 수 없음: ID=%d", id))
	}

	r.logger.WithField("box_id", id).Info("재고 박스 삭제 완료")
	return nil
}

// Count는 전체 박스 수를 반환합니다
func (r *MySQLInventoryBoxRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_box").Scan(&count); err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	return count, nil
}

// scanBoxes는 결과 행들을 InventoryBox 목록으로 변환합니다
func (r *MySQLInventoryBoxRepository) scanBoxes(rows *sql.Rows) ([]entities.InventoryBox, error) {
	var results []entities.InventoryBox

	for rows.Next() {
		var b entities.InventoryBox
		var model sql.NullString
		var macsJSON string

		if err := rows.Scan(&b.ID, &b.BoxNumber, &b.EquipmentName, &model, &macsJSON, &b.CreatedAt); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		if model.Valid {
			b.Model = model.String
		}

		macs, err := decodeMACs(macsJSON)
		if err != nil {
			r.logger.WithError(err).WithField("box_id", b.ID).Error("MAC 목록 역직렬화 실패")
			continue
		}
		b.MACs = macs

		results = append(results, b)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return results, nil
}
