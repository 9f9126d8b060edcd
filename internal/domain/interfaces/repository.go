package interfaces

import (
	"context"
	"time"

	"equiptrack/internal/domain/entities"
)

// EquipmentRepository는 장비 저장소 인터페이스입니다
type EquipmentRepository interface {
	// FindByMAC은 MAC 주소가 정확히 일치하는 장비들을 조회합니다.
	// excludeID가 0보다 크면 해당 레코드는 결과에서 제외됩니다.
	FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.Equipment, error)

	// GetByID는 ID로 장비를 조회합니다
	GetByID(ctx context.Context, id int) (*entities.Equipment, error)

	// List는 전체 장비를 조회합니다
	List(ctx context.Context) ([]entities.Equipment, error)

	// Create는 장비를 생성하고 생성된 ID를 반환합니다
	Create(ctx context.Context, equipment *entities.Equipment) (int, error)

	// Update는 장비를 수정합니다
	Update(ctx context.Context, equipment *entities.Equipment) error

	// Delete는 장비를 삭제합니다
	Delete(ctx context.Context, id int) error

	// Count는 전체 장비 수를 반환합니다
	Count(ctx context.Context) (int, error)
}

// InventoryBoxRepository는 재고 박스 저장소 인터페이스입니다
type InventoryBoxRepository interface {
	// FindByMAC은 MAC 배열에 대상 MAC이 포함된 박스들을 조회합니다
	FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.InventoryBox, error)

	GetByID(ctx context.Context, id int) (*entities.InventoryBox, error)
	List(ctx context.Context) ([]entities.InventoryBox, error)
	Create(ctx context.Context, box *entities.InventoryBox) (int, error)
	Update(ctx context.Context, box *entities.InventoryBox) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// DefectReportRepository는 불량 리포트 저장소 인터페이스입니다
type DefectReportRepository interface {
	// FindByMAC은 MAC 배열에 대상 MAC이 포함된 리포트들을 조회합니다
	FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.DefectReport, error)

	GetByID(ctx context.Context, id int) (*entities.DefectReport, error)
	List(ctx context.Context) ([]entities.DefectReport, error)

	// ListByDate는 특정 날짜에 생성된 리포트들을 조회합니다 (일일 리포트용)
	ListByDate(ctx context.Context, date time.Time) ([]entities.DefectReport, error)

	Create(ctx context.Context, report *entities.DefectReport) (int, error)
	Update(ctx context.Context, report *entities.DefectReport) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// RecoveryReportRepository는 복구 리포트 저장소 인터페이스입니다
type RecoveryReportRepository interface {
	// FindByMAC은 MAC 배열에 대상 MAC이 포함된 리포트들을 조회합니다
	FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.RecoveryReport, error)

	GetByID(ctx context.Context, id int) (*entities.RecoveryReport, error)
	List(ctx context.Context) ([]entities.RecoveryReport, error)
	ListByDate(ctx context.Context, date time.Time) ([]entities.RecoveryReport, error)
	Create(ctx context.Context, report *entities.RecoveryReport) (int, error)
	Update(ctx context.Context, report *entities.RecoveryReport) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// RMARecordRepository는 RMA 레코드 저장소 인터페이스입니다
type RMARecordRepository interface {
	// FindByMAC은 연결 문자열에 대상 MAC이 포함된 레코드들을 조회합니다
	FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.RMARecord, error)

	GetByID(ctx context.Context, id int) (*entities.RMARecord, error)
	List(ctx context.Context) ([]entities.RMARecord, error)
	Create(ctx context.Context, record *entities.RMARecord) (int, error)
	Update(ctx context.Context, record *entities.RMARecord) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// ProductionRepository는 생산 실적 저장소 인터페이스입니다
type ProductionRepository interface {
	Create(ctx context.Context, entry *entities.ProductionEntry) (int, error)
	ListByDate(ctx context.Context, date time.Time) ([]entities.ProductionEntry, error)
	Count(ctx context.Context) (int, error)
}
