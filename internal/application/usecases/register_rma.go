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

// RegisterRMAUseCase는 RMA 레코드 등록과 수정을 처리하는 유스케이스입니다
type RegisterRMAUseCase struct {
	repository interfaces.RMARecordRepository
	checker    *services.UniquenessChecker
	logger     *logrus.Logger
}

// NewRegisterRMAUseCase는 새로운 RegisterRMAUseCase를 생성합니다
func NewRegisterRMAUseCase(
	repo interfaces.RMARecordRepository,
	checker *services.UniquenessChecker,
	logger *logrus.Logger,
) *RegisterRMAUseCase {
	return &RegisterRMAUseCase{
		repository: repo,
		checker:    checker,
		logger:     logger,
	}
}

// RegisterRMAInput은 유스케이스의 입력 파라미터입니다
type RegisterRMAInput struct {
	ID        int
	RMANumber string
	Equipment string
	Model     string
	MACText   string
}

// RegisterRMAOutput은 유스케이스의 출력 결과입니다
type RegisterRMAOutput struct {
	ID     int
	MACs   []string
	Result services.ValidationResult
}

// Execute는 RMA 레코드 등록 유스케이스를 실행합니다.
// 파이프로 구분된 기존 입력도 쉼표 연결 문자열로 정규화되어 저장됩니다.
func (uc *RegisterRMAUseCase) Execute(ctx context.Context, input RegisterRMAInput) (*RegisterRMAOutput, error) {
	macs, formatErrs := parseMACText(input.MACText)

	record := &entities.RMARecord{
		ID:        input.ID,
		RMANumber: input.RMANumber,
		Equipment: input.Equipment,
		Model:     input.Model,
	}
	record.SetMACs(macs)

	if err := record.Validate(); err != nil {
		metrics.RecordRegistration(string(entities.CollectionRMA), "rejected")
		return &RegisterRMAOutput{
			MACs:   macs,
			Result: mergeResults(formatErrs, rejectedResult("", services.ErrorKindFormat, err.Error())),
		}, nil
	}

	result := mergeResults(formatErrs, uc.checker.ValidateList(ctx, macs, services.ContextOther, input.ID))
	if !result.Valid {
		metrics.RecordRegistration(string(entities.CollectionRMA), "rejected")
		return &RegisterRMAOutput{MACs: macs, Result: result}, nil
	}

	id, err := uc.save(ctx, record)
	if err != nil {
		metrics.RecordRegistration(string(entities.CollectionRMA), "failed")
		return nil, errors.NewSystemError("RMA 레코드 저장 실패", err)
	}

	metrics.RecordRegistration(string(entities.CollectionRMA), "success")
	uc.logger.WithFields(logrus.Fields{
		"rma_id":     id,
		"rma_number": record.RMANumber,
		"mac_count":  len(macs),
	}).Info("RMA 레코드 등록 완료")

	return &RegisterRMAOutput{ID: id, MACs: macs, Result: result}, nil
}

func (uc *RegisterRMAUseCase) save(ctx context.Context, record *entities.RMARecord) (int, error) {
	if record.ID > 0 {
		return record.ID, uc.repository.Update(ctx, record)
	}
	return uc.repository.Create(ctx, record)
}
