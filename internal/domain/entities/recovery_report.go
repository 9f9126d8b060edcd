package entities

import (
	"errors"
	"time"
)

var ErrEmptyProblem = errors.New("문제 설명이 비어있음")

// RecoveryReport는 복구 리포트의 도메인 엔티티입니다.
// 복구된 하드웨어는 이후 생산 라인에 재투입될 수 있습니다.
type RecoveryReport struct {
	ID          int
	Equipment   string
	Problem     string
	Solution    string
	Responsible string
	MACs        []string
	CreatedAt   time.Time
}

// Validate는 RecoveryReport의 유효성을 검증합니다
func (r *RecoveryReport) Validate() error {
	if r.Equipment == "" {
		return ErrEmptyName
	}
	if r.Problem == "" {
		return ErrEmptyProblem
	}
	return validateMACList(r.MACs)
}

// RemoveMAC은 리포트에서 대상 MAC을 제거합니다.
// 제거된 항목이 있으면 true를 반환합니다.
func (r *RecoveryReport) RemoveMAC(mac string) bool {
	before := len(r.MACs)
	r.MACs = removeMAC(r.MACs, mac)
	return len(r.MACs) != before
}

// ContainsMAC은 리포트에 대상 MAC이 있는지 확인합니다 (대소문자 무시)
func (r *RecoveryReport) ContainsMAC(mac string) bool {
	return containsFold(r.MACs, mac)
}
