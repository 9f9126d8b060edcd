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

// RegisterDefectReportUseCase는 불량 리포트 등록과 수정을 처리하는 유스케이스입니다
type RegisterDefectReportUseCase struct {
	repository interfaces.DefectReportRepository
	checker    *services.UniquenessChecker
	logger     *logrus.Logger
}

// NewRegisterDefectReportUseCase는 새로운 RegisterDefectReportUseCase를 생성합니다
func NewRegisterDefectReportUseCase(
	repo interfaces.DefectReportRepository,
	checker *services.UniquenessChecker,
	logger *logrus.Logger,
) *RegisterDefectReportUseCase {
	return &RegisterDefectReportUseCase{
		repository: repo,
		checker:    checker,
		logger:     logger,
	}
}

// RegisterDefectReportInput은 유스케이스의 입력 파라미터입니다.
// Quantity는 MACText에서 분리된 MAC 개수와 일치해야 합니다.
type RegisterDefectReportInput struct {
	ID        int
	Equipment string
	Model     string
	Quantity  int
	MACText   string
}

// RegisterDefectReportOutput은 유스케이스의 출력 결과입니다
type RegisterDefectReportOutput struct {
	ID     int
	MACs   []string
	Result services.ValidationResult
}

// Execute는 불량 리포트 등록 유스케이스를 실행합니다
func (uc *RegisterDefectReportUseCase) Execute(ctx context.Context, input RegisterDefectReportInput) (*RegisterDefectReportOutput, error) {
	macs, formatErrs := parseMACText(input.MACText)

	report := &entities.DefectReport{
		ID:        input.ID,
		Equipment: input.Equipment,
		Model:     input.Model,
		Quantity:  input.Quantity,
		MACs:      macs,
	}

	if err := report.Validate(); err != nil {
		metrics.RecordRegistration(string(entities.CollectionDefectReport), "rejected")
		return &RegisterDefectReportOutput{
			MACs:   macs,
			Result: mergeResults(formatErrs, rejectedResult("", services.ErrorKindFormat, err.Error())),
		}, nil
	}

	result := mergeResults(formatErrs, uc.checker.ValidateList(ctx, macs, services.ContextOther, input.ID))
	if !result.Valid {
		metrics.RecordRegistration(string(entities.CollectionDefectReport), "rejected")
		return &RegisterDefectReportOutput{MACs: macs, Result: result}, nil
	}

	id, err := uc.save(ctx, report)
	if err != nil {
		metrics.RecordRegistration(string(entities.CollectionDefectReport), "failed")
		return nil, errors.NewSystemError("불량 리포트 저장 실패", err)
	}

	metrics.RecordRegistration(string(entities.CollectionDefectReport), "success")
	uc.logger.WithFields(logrus.Fields{
		"report_id": id,
		"equipment": report.Equipment,
		"quantity":  report.Quantity,
	}).Info("불량 리포트 등록 완료")

	return &RegisterDefectReportOutput{ID: id, MACs: macs, Result: result}, nil
}

func (uc *RegisterDefectReportUseCase) save(ctx context.Context, report *entities.DefectReport) (int, error) {
	if report.ID > 0 {
		return report.ID, uc.repository.Update(ctx, report)
	}
	return uc.repository.Create(ctx, report)
}
