package usecases

import (
	"context"
	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"
	"equiptrack/internal/domain/services"
	"equiptrack/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// RegisterEquipmentUseCase는 장비 등록과 수정을 처리하는 유스케이스입니다
type RegisterEquipmentUseCase struct {
	repository interfaces.EquipmentRepository
	checker    *services.UniquenessChecker
	logger     *logrus.Logger
}

// NewRegisterEquipmentUseCase는 새로운 RegisterEquipmentUseCase를 생성합니다
func NewRegisterEquipmentUseCase(
	repo interfaces.EquipmentRepository,
	checker *services.UniquenessChecker,
	logger *logrus.Logger,
) *RegisterEquipmentUseCase {
	return &RegisterEquipmentUseCase{
		repository: repo,
		checker:    checker,
		logger:     logger,
	}
}

// RegisterEquipmentInput은 유스케이스의 입력 파라미터입니다.
// ID가 0보다 크면 기존 레코드 수정으로 처리되며, 유일성 검사에서
// 해당 레코드 자신은 제외됩니다.
type RegisterEquipmentInput struct {
	ID    int
	Name  string
	Model string
	MAC   string
}

// RegisterEquipmentOutput은 유스케이스의 출력 결과입니다
type RegisterEquipmentOutput struct {
	ID     int
	Result services.ValidationResult
}

// Execute는 장비 등록 유스케이스를 실행합니다.
// 형식, 중복, 충돌 문제는 에러가 아닌 Result로 반환되고,
// 조회 실패나 저장 실패만 에러로 반환됩니다.
func (uc *RegisterEquipmentUseCase) Execute(ctx context.Context, input RegisterEquipmentInput) (*RegisterEquipmentOutput, error) {
	equipment := &entities.Equipment{
		ID:    input.ID,
		Name:  input.Name,
		Model: input.Model,
		MAC:   input.MAC,
	}
	equipment.NormalizeMAC()

	if err := equipment.Validate(); err != nil {
		metrics.RecordRegistration(string(entities.CollectionEquipment), "rejected")
		return &RegisterEquipmentOutput{
			Result: rejectedResult(equipment.MAC, services.ErrorKindFormat, err.Error()),
		}, nil
	}

	// 장비 등록은 생산 컨텍스트로 검증됩니다
	result := uc.checker.ValidateList(ctx, []string{equipment.MAC}, services.ContextProduction, input.ID)
	if !result.Valid {
		metrics.RecordRegistration(string(entities.CollectionEquipment), "rejected")
		uc.logger.WithFields(logrus.Fields{
			"mac":    equipment.MAC,
			"errors": len(result.Errors),
		}).Info("장비 등록 거부됨")
		return &RegisterEquipmentOutput{Result: result}, nil
	}

	id, err := uc.save(ctx, equipment)
	if err != nil {
		metrics.RecordRegistration(string(entities.CollectionEquipment), "failed")
		return nil, errors.NewSystemError("장비 저장 실패", err)
	}

	metrics.RecordRegistration(string(entities.CollectionEquipment), "success")
	uc.logger.WithFields(logrus.Fields{
		"equipment_id": id,
		"mac":          equipment.MAC,
	}).Info("장비 등록 완료")

	return &RegisterEquipmentOutput{ID: id, Result: result}, nil
}

// save는 ID 유무에 따라 생성 또는 수정을 수행합니다
func (uc *RegisterEquipmentUseCase) save(ctx context.Context, equipment *entities.Equipment) (int, error) {
	if equipment.ID > 0 {
		return equipment.ID, uc.repository.Update(ctx, equipment)
	}
	return uc.repository.Create(ctx, equipment)
}

// rejectedResult는 단일 문제만 담은 무효 결과를 생성합니다
func rejectedResult(mac string, kind services.ValidationErrorKind, message string) services.ValidationResult {
	return services.ValidationResult{
		Valid: false,
		Errors: []services.ValidationError{
			{MAC: mac, Kind: kind, Message: message},
		},
	}
}
