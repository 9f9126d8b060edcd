package entities

import (
	"errors"
	"time"
)

var ErrEmptyBoxNumber = errors.New("박스 번호가 비어있음")

// InventoryBox는 재고 박스의 도메인 엔티티입니다.
// 박스 하나에 여러 장비의 MAC 주소가 담깁니다.
type InventoryBox struct {
	ID            int
	BoxNumber     string
	EquipmentName string
	Model         string
	MACs          []string
	CreatedAt     time.Time
}

// Validate는 InventoryBox의 유효성을 검증합니다
func (b *InventoryBox) Validate() error {
	if b.BoxNumber == "" {
		return ErrEmptyBoxNumber
	}
	return validateMACList(b.MACs)
}

// RemoveMAC은 박스에서 대상 MAC을 제거합니다.
// 제거된 항목이 있으면 true를 반환합니다.
func (b *InventoryBox) RemoveMAC(mac string) bool {
	before := len(b.MACs)
	b.MACs = removeMAC(b.MACs, mac)
	return len(b.MACs) != before
}

// ContainsMAC은 박스에 대상 MAC이 있는지 확인합니다 (대소문자 무시)
func (b *InventoryBox) ContainsMAC(mac string) bool {
	return containsFold(b.MACs, mac)
}
