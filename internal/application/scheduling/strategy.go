package scheduling

import (
	"context"
	"equiptrack/internal/infrastructure/metrics"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Strategy는 스케줄링 전략 인터페이스입니다
type Strategy interface {
	// NextInterval은 다음 실행까지의 대기 시간을 반환합니다
	NextInterval(success bool) time.Duration
	// Reset은 전략을 초기 상태로 리셋합니다
	Reset()
}

// ExponentialBackoffStrategy는 지수 백오프를 구현하는 스케줄링 전략입니다
type ExponentialBackoffStrategy struct {
	baseInterval   time.Duration
	maxInterval    time.Duration
	multiplier     float64
	currentBackoff int
	logger         *logrus.Logger
}

// NewExponentialBackoffStrategy는 새로운 지수 백오프 전략을 생성합니다
func NewExponentialBackoffStrategy(
	baseInterval time.Duration,
	maxInterval time.Duration,
	multiplier float64,
	logger *logrus.Logger,
) *ExponentialBackoffStrategy {
	if multiplier <= 1 {
		multiplier = 2.0
	}

	return &ExponentialBackoffStrategy{
		baseInterval:   baseInterval,
		maxInterval:    maxInterval,
		multiplier:     multiplier,
		currentBackoff: 0,
		logger:         logger,
	}
}

// NextInterval은 다음 실행까지의 대기 시간을 계산합니다
func (s *ExponentialBackoffStrategy) NextInterval(success bool) time.Duration {
	if success {
		// 성공하면 백오프 리셋
		if s.currentBackoff > 0 {
			s.logger.Debug("Resetting backoff after success")
			s.currentBackoff = 0
			metrics.SetBackoffLevel(0)
		}
		return s.baseInterval
	}

	// 실패 시 백오프 증가
	s.currentBackoff++
	metrics.SetBackoffLevel(float64(s.currentBackoff))

	// 지수 백오프 계산
	backoffDuration := float64(s.baseInterval) * math.Pow(s.multiplier, float64(s.currentBackoff-1))
	nextInterval := time.Duration(backoffDuration)

	// 최대 간격 제한
	if nextInterval > s.maxInterval {
		nextInterval = s.maxInterval
	}

	s.logger.WithFields(logrus.Fields{
		"backoff_count": s.currentBackoff,
		"next_interval": nextInterval,
		"max_interval":  s.maxInterval,
	}).Debug("Exponential backoff calculated")

	return nextInterval
}

// Reset은 백오프 카운터를 리셋합니다
func (s *ExponentialBackoffStrategy) Reset() {
	s.currentBackoff = 0
	metrics.SetBackoffLevel(0)
}

// Controller는 주기적 작업 실행을 관리하는 컨트롤러입니다
type Controller struct {
	strategy Strategy
	ticker   *time.Ticker
	logger   *logrus.Logger
}

// NewController는 새로운 스케줄링 컨트롤러를 생성합니다
func NewController(strategy Strategy, logger *logrus.Logger) *Controller {
	return &Controller{
		strategy: strategy,
		logger:   logger,
	}
}

// Start는 주기 실행을 시작합니다
func (c *Controller) Start(ctx context.Context, task func(context.Context) error) error {
	// 초기 간격으로 ticker 생성
	initialInterval := c.strategy.NextInterval(true)
	c.ticker = time.NewTicker(initialInterval)
	defer c.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.ticker.C:
			// 작업 실행
			err := task(ctx)
			success := err == nil

			// 다음 간격 계산
			nextInterval := c.strategy.NextInterval(success)

			// ticker 재설정
			c.ticker.Reset(nextInterval)

			if err != nil {
				c.logger.WithError(err).Error("Scheduled task failed")
			}
		}
	}
}
