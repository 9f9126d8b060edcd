package usecases

import (
	"context"
	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"
	"equiptrack/internal/domain/macaddr"
	"equiptrack/internal/infrastructure/metrics"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ResolveAction은 충돌 해소 액션의 종류입니다
type ResolveAction string

const (
	// ActionRemoveMAC은 레코드를 유지한 채 충돌 MAC만 제거합니다
	ActionRemoveMAC ResolveAction = "remove_mac"

	// ActionEdit은 레코드 편집기를 열기 위한 대상 참조를 반환합니다.
	// 이 액션 자체는 데이터를 변경하지 않습니다.
	ActionEdit ResolveAction = "edit"

	// ActionDeleteRecord는 충돌 레코드 전체를 삭제합니다
	ActionDeleteRecord ResolveAction = "delete_record"
)

// Role은 요청자의 권한 수준입니다
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ResolveConflictUseCase는 MAC 충돌 해소 워크플로우를 처리하는 유스케이스입니다
type ResolveConflictUseCase struct {
	equipmentRepo interfaces.EquipmentRepository
	boxRepo       interfaces.InventoryBoxRepository
	defectRepo    interfaces.DefectReportRepository
	recoveryRepo  interfaces.RecoveryReportRepository
	rmaRepo       interfaces.RMARecordRepository
	logger        *logrus.Logger
}

// NewResolveConflictUseCase는 새로운 ResolveConflictUseCase를 생성합니다
func NewResolveConflictUseCase(
	equipmentRepo interfaces.EquipmentRepository,
	boxRepo interfaces.InventoryBoxRepository,
	defectRepo interfaces.DefectReportRepository,
	recoveryRepo interfaces.RecoveryReportRepository,
	rmaRepo interfaces.RMARecordRepository,
	logger *logrus.Logger,
) *ResolveConflictUseCase {
	return &ResolveConflictUseCase{
		equipmentRepo: equipmentRepo,
		boxRepo:       boxRepo,
		defectRepo:    defectRepo,
		recoveryRepo:  recoveryRepo,
		rmaRepo:       rmaRepo,
		logger:        logger,
	}
}

// ResolveConflictInput은 유스케이스의 입력 파라미터입니다.
// Confirmed는 삭제 액션에서 사용자가 확인 단계를 거쳤는지 나타냅니다.
type ResolveConflictInput struct {
	Collection string
	RecordID   int
	MAC        string
	Action     ResolveAction
	Role       Role
	Confirmed  bool
}

// RecordReference는 편집 액션이 가리키는 대상 레코드입니다
type RecordReference struct {
	Collection string `json:"collection"`
	RecordID   int    `json:"record_id"`
	Display    string `json:"display"`
	MAC        string `json:"mac"`
}

// ResolveConflictOutput은 유스케이스의 출력 결과입니다.
// Reference는 편집 액션에서만 채워집니다.
type ResolveConflictOutput struct {
	Resolved  bool
	Message   string
	Reference *RecordReference
}

// Execute는 충돌 해소 유스케이스를 실행합니다.
// MAC 제거는 여러 MAC을 보유하는 컬렉션에서만 가능하며, 편집과 레코드
// 삭제는 관리자 권한을 요구합니다. 삭제는 확인 단계도 거쳐야 합니다.
func (uc *ResolveConflictUseCase) Execute(ctx context.Context, input ResolveConflictInput) (*ResolveConflictOutput, error) {
	collection := entities.Collection(input.Collection)
	mac := macaddr.Canonical(input.MAC)

	var err error
	switch input.Action {
	case ActionRemoveMAC:
		err = uc.removeMAC(ctx, collection, input.RecordID, mac)
	case ActionEdit:
		if input.Role != RoleAdmin {
			metrics.RecordResolution(string(ActionEdit), "denied")
			return nil, errors.NewValidationError("레코드 편집은 관리자 권한이 필요함", nil)
		}
		ref, err := uc.editReference(ctx, collection, input.RecordID, mac)
		if err != nil {
			metrics.RecordResolution(string(ActionEdit), "failed")
			return nil, err
		}
		metrics.RecordResolution(string(ActionEdit), "success")
		return &ResolveConflictOutput{
			Resolved:  false,
			Message:   fmt.Sprintf("%s ID %d 편집 대상", collection.DisplayName(), input.RecordID),
			Reference: ref,
		}, nil
	case ActionDeleteRecord:
		if input.Role != RoleAdmin {
			metrics.RecordResolution(string(ActionDeleteRecord), "denied")
			return nil, errors.NewValidationError("레코드 삭제는 관리자 권한이 필요함", nil)
		}
		if !input.Confirmed {
			metrics.RecordResolution(string(ActionDeleteRecord), "denied")
			return nil, errors.NewValidationError("레코드 삭제는 확인 단계가 필요함", nil)
		}
		err = uc.deleteRecord(ctx, collection, input.RecordID)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("알 수 없는 해소 액션: %s", input.Action), nil)
	}

	if err != nil {
		metrics.RecordResolution(string(input.Action), "failed")
		return nil, err
	}

	metrics.RecordResolution(string(input.Action), "success")
	uc.logger.WithFields(logrus.Fields{
		"collection": collection,
		"record_id":  input.RecordID,
		"mac":        mac,
		"action":     input.Action,
		"role":       input.Role,
	}).Info("MAC 충돌 해소 완료")

	return &ResolveConflictOutput{
		Resolved: true,
		Message:  fmt.Sprintf("%s ID %d의 충돌이 해소됨", collection.DisplayName(), input.RecordID),
	}, nil
}

// removeMAC은 레코드를 유지한 채 대상 MAC만 제거합니다
func (uc *ResolveConflictUseCase) removeMAC(ctx context.Context, collection entities.Collection, recordID int, mac string) error {
	if !collection.IsMultiMAC() {
		return errors.NewValidationError(
			fmt.Sprintf("%s은(는) 단일 MAC 레코드이므로 MAC만 제거할 수 없음", collection.DisplayName()), nil)
	}

	switch collection {
	case entities.CollectionInventoryBox:
		box, err := uc.boxRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		if !box.RemoveMAC(mac) {
			return errors.NewNotFoundError(fmt.Sprintf("재고 박스 ID %d에 MAC %s이(가) 없음", recordID, mac))
		}
		return uc.boxRepo.Update(ctx, box)

	case entities.CollectionDefectReport:
		report, err := uc.defectRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		// RemoveMAC이 수량을 함께 재계산하므로 수량-MAC 불변식이 유지됩니다
		if !report.RemoveMAC(mac) {
			return errors.NewNotFoundError(fmt.Sprintf("불량 리포트 ID %d에 MAC %s이(가) 없음", recordID, mac))
		}
		return uc.defectRepo.Update(ctx, report)

	case entities.CollectionRecovery:
		report, err := uc.recoveryRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		if !report.RemoveMAC(mac) {
			return errors.NewNotFoundError(fmt.Sprintf("복구 리포트 ID %d에 MAC %s이(가) 없음", recordID, mac))
		}
		return uc.recoveryRepo.Update(ctx, report)

	case entities.CollectionRMA:
		record, err := uc.rmaRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		macs := record.SplitMACs()
		filtered := macs[:0]
		for _, m := range macs {
			if !macaddr.Equal(m, mac) {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) == len(macs) {
			return errors.NewNotFoundError(fmt.Sprintf("RMA 레코드 ID %d에 MAC %s이(가) 없음", recordID, mac))
		}
		record.SetMACs(filtered)
		return uc.rmaRepo.Update(ctx, record)

	default:
		return errors.NewValidationError(fmt.Sprintf("알 수 없는 컬렉션: %s", collection), nil)
	}
}

// editReference는 편집기가 열어야 할 레코드의 참조를 만듭니다.
// 레코드 존재 확인만 수행하며 어떤 데이터도 변경하지 않습니다.
func (uc *ResolveConflictUseCase) editReference(ctx context.Context, collection entities.Collection, recordID int, mac string) (*RecordReference, error) {
	ref := &RecordReference{
		Collection: string(collection),
		RecordID:   recordID,
		MAC:        mac,
	}

	switch collection {
	case entities.CollectionEquipment:
		record, err := uc.equipmentRepo.GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		ref.Display = fmt.Sprintf("%s (%s)", record.Name, record.Model)

	case entities.CollectionInventoryBox:
		box, err := uc.boxRepo.GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		ref.Display = fmt.Sprintf("박스 %s - %s", box.BoxNumber, box.EquipmentName)

	case entities.CollectionDefectReport:
		report, err := uc.defectRepo.GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		ref.Display = fmt.Sprintf("%s (%s, %d개)", report.Equipment, report.Model, report.Quantity)

	case entities.CollectionRecovery:
		report, err := uc.recoveryRepo.GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		ref.Display = fmt.Sprintf("%s - %s", report.Equipment, report.Problem)

	case entities.CollectionRMA:
		record, err := uc.rmaRepo.GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		ref.Display = fmt.Sprintf("RMA %s - %s", record.RMANumber, record.Equipment)

	default:
		return nil, errors.NewValidationError(fmt.Sprintf("알 수 없는 컬렉션: %s", collection), nil)
	}

	return ref, nil
}

// deleteRecord는 충돌 레코드 전체를 삭제합니다
func (uc *ResolveConflictUseCase) deleteRecord(ctx context.Context, collection entities.Collection, recordID int) error {
	switch collection {
	case entities.CollectionEquipment:
		return uc.equipmentRepo.Delete(ctx, recordID)
	case entities.CollectionInventoryBox:
		return uc.boxRepo.Delete(ctx, recordID)
	case entities.CollectionDefectReport:
		return uc.defectRepo.Delete(ctx, recordID)
	case entities.CollectionRecovery:
		return uc.recoveryRepo.Delete(ctx, recordID)
	case entities.CollectionRMA:
		return uc.rmaRepo.Delete(ctx, recordID)
	default:
		return errors.NewValidationError(fmt.Sprintf("알 수 없는 컬렉션: %s", collection), nil)
	}
}
