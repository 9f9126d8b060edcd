package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyEmployee    = errors.New("작업자 이름이 비어있음")
	ErrNegativeQuantity = errors.New("생산 수량은 음수일 수 없음")
)

// ProductionEntry는 작업자 생산 실적의 도메인 엔티티입니다
type ProductionEntry struct {
	ID          int
	Employee    string
	ShiftDate   time.Time
	Quantity    decimal.Decimal
	HoursWorked decimal.Decimal
	CreatedAt   time.Time
}

// Validate는 ProductionEntry의 유효성을 검증합니다
func (p *ProductionEntry) Validate() error {
	if p.Employee == "" {
		return ErrEmptyEmployee
	}
	if p.Quantity.IsNegative() || p.HoursWorked.IsNegative() {
		return ErrNegativeQuantity
	}
	return nil
}

// RatePerHour는 시간당 생산량을 반환합니다.
// 근무 시간이 0이면 0을 반환합니다.
func (p *ProductionEntry) RatePerHour() decimal.Decimal {
	if p.HoursWorked.IsZero() {
		return decimal.Zero
	}
	return p.Quantity.DivRound(p.HoursWorked, 2)
}
