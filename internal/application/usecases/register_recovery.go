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

// RegisterRecoveryReportUseCase는 복구 리포트 등록과 수정을 처리하는 유스케이스입니다
type RegisterRecoveryReportUseCase struct {
	repository interfaces.RecoveryReportRepository
	checker    *services.UniquenessChecker
	logger     *logrus.Logger
}

// NewRegisterRecoveryReportUseCase는 새로운 RegisterRecoveryReportUseCase를 생성합니다
func NewRegisterRecoveryReportUseCase(
	repo interfaces.RecoveryReportRepository,
	checker *services.UniquenessChecker,
	logger *logrus.Logger,
) *RegisterRecoveryReportUseCase {
	return &RegisterRecoveryReportUseCase{
		repository: repo,
		checker:    checker,
		logger:     logger,
	}
}

// RegisterRecoveryReportInput은 유스케이스의 입력 파라미터입니다
type RegisterRecoveryReportInput struct {
	ID          int
	Equipment   string
	Problem     string
	Solution    string
	Responsible string
	MACText     string
}

// RegisterRecoveryReportOutput은 유스케이스의 출력 결과입니다
type RegisterRecoveryReportOutput struct {
	ID     int
	MACs   []string
	Result services.ValidationResult
}

// Execute는 복구 리포트 등록 유스케이스를 실행합니다.
// 복구 컨텍스트로 검증되므로 이미 복구 리포트에 있는 MAC은 거부됩니다.
func (uc *RegisterRecoveryReportUseCase) Execute(ctx context.Context, input RegisterRecoveryReportInput) (*RegisterRecoveryReportOutput, error) {
	macs, formatErrs := parseMACText(input.MACText)

	report := &entities.RecoveryReport{
		ID:          input.ID,
		Equipment:   input.Equipment,
		Problem:     input.Problem,
		Solution:    input.Solution,
		Responsible: input.Responsible,
		MACs:        macs,
	}

	if err := report.Validate(); err != nil {
		metrics.RecordRegistration(string(entities.CollectionRecovery), "rejected")
		return &RegisterRecoveryReportOutput{
			MACs:   macs,
			Result: mergeResults(formatErrs, rejectedResult("", services.ErrorKindFormat, err.Error())),
		}, nil
	}

	result := mergeResults(formatErrs, uc.checker.ValidateList(ctx, macs, services.ContextRecovery, input.ID))
	if !result.Valid {
		metrics.RecordRegistration(string(entities.CollectionRecovery), "rejected")
		return &RegisterRecoveryReportOutput{MACs: macs, Result: result}, nil
	}

	id, err := uc.save(ctx, report)
	if err != nil {
		metrics.RecordRegistration(string(entities.CollectionRecovery), "failed")
		return nil, errors.NewSystemError("복구 리포트 저장 실패", err)
	}

	metrics.RecordRegistration(string(entities.CollectionRecovery), "success")
	uc.logger.WithFields(logrus.Fields{
		"report_id": id,
		"equipment": report.Equipment,
		"mac_count": len(report.MACs),
	}).Info("복구 리포트 등록 완료")

	return &RegisterRecoveryReportOutput{ID: id, MACs: macs, Result: result}, nil
}

func (uc *RegisterRecoveryReportUseCase) save(ctx context.Context, report *entities.RecoveryReport) (int, error) {
	if report.ID > 0 {
		return report.ID, uc.repository.Update(ctx, report)
	}
	return uc.repository.Create(ctx, report)
}
