package entities

import (
	"errors"
	"strings"
	"time"

	"equiptrack/internal/domain/macaddr"
)

var ErrEmptyRMANumber = errors.New("RMA 번호가 비어있음")

// RMARecord는 RMA(반품 승인) 레코드의 도메인 엔티티입니다.
// 기존 시스템과의 호환을 위해 MAC 목록은 쉼표 또는 파이프로 연결된
// 단일 문자열로 저장됩니다. 쓰기 시에는 쉼표 연결로 정규화합니다.
type RMARecord struct {
	ID        int
	RMANumber string
	Equipment string
	Model     string
	MACs      string
	CreatedAt time.Time
}

// SplitMACs는 연결 문자열을 개별 MAC 목록으로 분리합니다
func (r *RMARecord) SplitMACs() []string {
	fields := strings.FieldsFunc(r.MACs, func(c rune) bool {
		return c == ',' || c == '|'
	})

	var macs []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			macs = append(macs, f)
		}
	}
	return macs
}

// SetMACs는 MAC 목록을 쉼표 연결 문자열로 저장합니다
func (r *RMARecord) SetMACs(macs []string) {
	r.MACs = strings.Join(macs, ",")
}

// ContainsMAC은 레코드에 대상 MAC이 있는지 확인합니다 (대소문자 무시)
func (r *RMARecord) ContainsMAC(mac string) bool {
	return containsFold(r.SplitMACs(), mac)
}

// Validate는 RMARecord의 유효성을 검증합니다
func (r *RMARecord) Validate() error {
	if r.RMANumber == "" {
		return ErrEmptyRMANumber
	}
	for _, mac := range r.SplitMACs() {
		if !macaddr.IsValidFormat(mac) {
			return ErrInvalidMacAddress
		}
	}
	return nil
}
