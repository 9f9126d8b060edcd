package usecases

import (
	"context"
	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DashboardUseCase는 대시보드 요약 정보를 조회하는 유스케이스입니다
type DashboardUseCase struct {
	equipmentRepo  interfaces.EquipmentRepository
	boxRepo        interfaces.InventoryBoxRepository
	defectRepo     interfaces.DefectReportRepository
	recoveryRepo   interfaces.RecoveryReportRepository
	rmaRepo        interfaces.RMARecordRepository
	productionRepo interfaces.ProductionRepository
	logger         *logrus.Logger
}

// NewDashboardUseCase는 새로운 DashboardUseCase를 생성합니다
func NewDashboardUseCase(
	equipmentRepo interfaces.EquipmentRepository,
	boxRepo interfaces.InventoryBoxRepository,
	defectRepo interfaces.DefectReportRepository,
	recoveryRepo interfaces.RecoveryReportRepository,
	rmaRepo interfaces.RMARecordRepository,
	productionRepo interfaces.ProductionRepository,
	logger *logrus.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		equipmentRepo:  equipmentRepo,
		boxRepo:        boxRepo,
		defectRepo:     defectRepo,
		recoveryRepo:   recoveryRepo,
		rmaRepo:        rmaRepo,
		productionRepo: productionRepo,
		logger:         logger,
	}
}

// DashboardOutput은 컬렉션별 레코드 수 요약입니다
type DashboardOutput struct {
	Counts          map[string]int `json:"counts"`
	ProductionCount int            `json:"production_count"`
}

// Execute는 대시보드 요약 조회 유스케이스를 실행합니다
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	counts := make(map[string]int)

	counters := []struct {
		collection entities.Collection
		count      func(context.Context) (int, error)
	}{
		{entities.CollectionEquipment, uc.equipmentRepo.Count},
		{entities.CollectionInventoryBox, uc.boxRepo.Count},
		{entities.CollectionDefectReport, uc.defectRepo.Count},
		{entities.CollectionRecovery, uc.recoveryRepo.Count},
		{entities.CollectionRMA, uc.rmaRepo.Count},
	}

	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, errors.NewSystemError(c.collection.DisplayName()+" 수 조회 실패", err)
		}
		counts[string(c.collection)] = n
	}

	productionCount, err := uc.productionRepo.Count(ctx)
	if err != nil {
		return nil, errors.NewSystemError("생산 실적 수 조회 실패", err)
	}

	return &DashboardOutput{Counts: counts, ProductionCount: productionCount}, nil
}
