package scheduling

import (
	"context"
	"equiptrack/internal/application/usecases"
	"equiptrack/internal/infrastructure/metrics"
	"time"

	"github.com/sirupsen/logrus"
)

// ReportScheduler는 일일 리포트 생성을 주기적으로 시도하는 스케줄러입니다.
// 멱등성은 유스케이스가 보장하므로 스케줄러는 단순히 주기 실행만 담당합니다.
type ReportScheduler struct {
	usecase    *usecases.GenerateDailyReportUseCase
	controller *Controller
	onGenerate func(date string)
	logger     *logrus.Logger
}

// NewReportScheduler는 새로운 ReportScheduler를 생성합니다.
// onGenerate는 리포트가 실제로 생성되었을 때 호출되는 콜백입니다 (nil 허용).
func NewReportScheduler(
	usecase *usecases.GenerateDailyReportUseCase,
	checkInterval time.Duration,
	onGenerate func(date string),
	logger *logrus.Logger,
) *ReportScheduler {
	strategy := NewExponentialBackoffStrategy(checkInterval, checkInterval*10, 2.0, logger)
	return &ReportScheduler{
		usecase:    usecase,
		controller: NewController(strategy, logger),
		onGenerate: onGenerate,
		logger:     logger,
	}
}

// Run은 컨텍스트가 취소될 때까지 리포트 생성 사이클을 반복합니다
func (s *ReportScheduler) Run(ctx context.Context) error {
	return s.controller.Start(ctx, s.cycle)
}

// cycle은 한 번의 리포트 생성 사이클을 수행합니다
func (s *ReportScheduler) cycle(ctx context.Context) error {
	metrics.RecordReportCycle()

	output, err := s.usecase.Execute(ctx)
	if err != nil {
		s.logger.WithError(err).Error("일일 리포트 생성 실패")
		return err
	}

	if output.Generated {
		if s.onGenerate != nil {
			s.onGenerate(output.Date)
		}
	}
	return nil
}
