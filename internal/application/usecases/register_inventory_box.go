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

// RegisterInventoryBoxUseCase는 재고 박스 등록과 수정을 처리하는 유스케이스입니다
type RegisterInventoryBoxUseCase struct {
	repository interfaces.InventoryBoxRepository
	checker    *services.UniquenessChecker
	logger     *logrus.Logger
}

// NewRegisterInventoryBoxUseCase는 새로운 RegisterInventoryBoxUseCase를 생성합니다
func NewRegisterInventoryBoxUseCase(
	repo interfaces.InventoryBoxRepository,
	checker *services.UniquenessChecker,
	logger *logrus.Logger,
) *RegisterInventoryBoxUseCase {
	return &RegisterInventoryBoxUseCase{
		repository: repo,
		checker:    checker,
		logger:     logger,
	}
}

// RegisterInventoryBoxInput은 유스케이스의 입력 파라미터입니다.
// MACText는 붙여넣기된 원문 그대로의 MAC 목록 텍스트입니다.
type RegisterInventoryBoxInput struct {
	ID            int
	BoxNumber     string
	EquipmentName string
	Model         string
	MACText       string
}

// RegisterInventoryBoxOutput은 유스케이스의 출력 결과입니다
type RegisterInventoryBoxOutput struct {
	ID     int
	MACs   []string
	Result services.ValidationResult
}

// Execute는 재고 박스 등록 유스케이스를 실행합니다
func (uc *RegisterInventoryBoxUseCase) Execute(ctx context.Context, input RegisterInventoryBoxInput) (*RegisterInventoryBoxOutput, error) {
	macs, formatErrs := parseMACText(input.MACText)

	box := &entities.InventoryBox{
		ID:            input.ID,
		BoxNumber:     input.BoxNumber,
		EquipmentName: input.EquipmentName,
		Model:         input.Model,
		MACs:          macs,
	}

	if err := box.Validate(); err != nil {
		metrics.RecordRegistration(string(entities.CollectionInventoryBox), "rejected")
		return &RegisterInventoryBoxOutput{
			MACs:   macs,
			Result: mergeResults(formatErrs, rejectedResult("", services.ErrorKindFormat, err.Error())),
		}, nil
	}

	// 재고 박스 등록은 생산 흐름에 속하므로 복구 리포트의 MAC 재투입이 허용됩니다
	result := mergeResults(formatErrs, uc.checker.ValidateList(ctx, macs, services.ContextProduction, input.ID))
	if !result.Valid {
		metrics.RecordRegistration(string(entities.CollectionInventoryBox), "rejected")
		return &RegisterInventoryBoxOutput{MACs: macs, Result: result}, nil
	}

	id, err := uc.save(ctx, box)
	if err != nil {
		metrics.RecordRegistration(string(entities.CollectionInventoryBox), "failed")
		return nil, errors.NewSystemError("재고 박스 저장 실패", err)
	}

	metrics.RecordRegistration(string(entities.CollectionInventoryBox), "success")
	uc.logger.WithFields(logrus.Fields{
		"box_id":     id,
		"box_number": box.BoxNumber,
		"mac_count":  len(box.MACs),
	}).Info("재고 박스 등록 완료")

	return &RegisterInventoryBoxOutput{ID: id, MACs: macs, Result: result}, nil
}

func (uc *RegisterInventoryBoxUseCase) save(ctx context.Context, box *entities.InventoryBox) (int, error) {
	if box.ID > 0 {
		return box.ID, uc.repository.Update(ctx, box)
	}
	return uc.repository.Create(ctx, box)
}
