package entities

import (
	"errors"
	"time"
)

var ErrQuantityMismatch = errors.New("수량과 MAC 개수가 일치하지 않음")

// DefectReport는 불량 리포트의 도메인 엔티티입니다.
// 불량 수량(Quantity)은 항상 MAC 목록의 길이와 일치해야 합니다.
type DefectReport struct {
	ID        int
	Equipment string
	Model     string
	Quantity  int
	MACs      []string
	CreatedAt time.Time
}

// Validate는 DefectReport의 유효성을 검증합니다
func (d *DefectReport) Validate() error {
	if d.Equipment == "" {
		return ErrEmptyName
	}
	if d.Quantity != len(d.MACs) {
		return ErrQuantityMismatch
	}
	return validateMACList(d.MACs)
}

// RemoveMAC은 리포트에서 대상 MAC을 제거하고 수량을 재계산합니다.
// 제거된 항목이 있으면 true를 반환합니다.
func (d *DefectReport) RemoveMAC(mac string) bool {
	before := len(d.MACs)
	d.MACs = removeMAC(d.MACs, mac)
	if len(d.MACs) == before {
		return false
	}
	d.Quantity = len(d.MACs)
	return true
}

// ContainsMAC은 리포트에 대상 MAC이 있는지 확인합니다 (대소문자 무시)
func (d *DefectReport) ContainsMAC(mac string) bool {
	return containsFold(d.MACs, mac)
}
