package usecases

import (
	"context"
	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RecordProductionUseCase는 작업자 생산 실적 기록을 처리하는 유스케이스입니다
type RecordProductionUseCase struct {
	repository interfaces.ProductionRepository
	clock      interfaces.Clock
	logger     *logrus.Logger
}

// NewRecordProductionUseCase는 새로운 RecordProductionUseCase를 생성합니다
func NewRecordProductionUseCase(
	repo interfaces.ProductionRepository,
	clock interfaces.Clock,
	logger *logrus.Logger,
) *RecordProductionUseCase {
	return &RecordProductionUseCase{
		repository: repo,
		clock:      clock,
		logger:     logger,
	}
}

// RecordProductionInput은 유스케이스의 입력 파라미터입니다.
// 수량과 근무 시간은 부동소수점 오차를 피하기 위해 문자열로 받습니다.
type RecordProductionInput struct {
	Employee    string
	ShiftDate   string // YYYY-MM-DD, 비어있으면 오늘
	Quantity    string
	HoursWorked string
}

// RecordProductionOutput은 유스케이스의 출력 결과입니다
type RecordProductionOutput struct {
	ID          int
	RatePerHour decimal.Decimal
}

// Execute는 생산 실적 기록 유스케이스를 실행합니다
func (uc *RecordProductionUseCase) Execute(ctx context.Context, input RecordProductionInput) (*RecordProductionOutput, error) {
	quantity, err := decimal.NewFromString(input.Quantity)
	if err != nil {
		return nil, errors.NewValidationError("생산 수량이 올바른 숫자가 아님", err)
	}

	hours, err := decimal.NewFromString(input.HoursWorked)
	if err != nil {
		return nil, errors.NewValidationError("근무 시간이 올바른 숫자가 아님", err)
	}

	shiftDate := uc.clock.Now()
	if input.ShiftDate != "" {
		shiftDate, err = time.Parse("2006-01-02", input.ShiftDate)
		if err != nil {
			return nil, errors.NewValidationError("근무 날짜 형식이 올바르지 않음 (YYYY-MM-DD)", err)
		}
	}

	entry := &entities.ProductionEntry{
		Employee:    input.Employee,
		ShiftDate:   shiftDate,
		Quantity:    quantity,
		HoursWorked: hours,
	}

	if err := entry.Validate(); err != nil {
		return nil, errors.NewValidationError("생산 실적 검증 실패", err)
	}

	id, err := uc.repository.Create(ctx, entry)
	if err != nil {
		return nil, errors.NewSystemError("생산 실적 저장 실패", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"entry_id": id,
		"employee": entry.Employee,
		"quantity": entry.Quantity.String(),
	}).Info("생산 실적 기록 완료")

	return &RecordProductionOutput{ID: id, RatePerHour: entry.RatePerHour()}, nil
}
