package entities

import (
	"errors"
	"time"

	"equiptrack/internal/domain/macaddr"
)

var (
	ErrInvalidMacAddress  = errors.New("유효하지 않은 MAC 주소 형식")
	ErrDuplicateMacInList = errors.New("목록 내 중복된 MAC 주소")
	ErrEmptyName          = errors.New("이름이 비어있음")
)

// Equipment는 생산 장비의 도메인 엔티티입니다.
// 장비 하나는 정확히 하나의 MAC 주소를 가집니다.
type Equipment struct {
	ID        int
	Name      string
	Model     string
	MAC       string
	CreatedAt time.Time
}

// Validate는 Equipment의 유효성을 검증합니다
func (e *Equipment) Validate() error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if !macaddr.IsValidFormat(e.MAC) {
		return ErrInvalidMacAddress
	}
	return nil
}

// NormalizeMAC은 MAC 필드를 정규형으로 변환합니다
func (e *Equipment) NormalizeMAC() {
	e.MAC = macaddr.Normalize(e.MAC)
}
