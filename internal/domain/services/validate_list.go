package services

import (
	"context"
	"fmt"

	"equiptrack/internal/domain/macaddr"
)

// ValidationErrorKind는 목록 검증에서 발생한 에러의 분류입니다
type ValidationErrorKind string

const (
	// ErrorKindFormat은 정규형이 아닌 입력입니다
	ErrorKindFormat ValidationErrorKind = "format"

	// ErrorKindDuplicate는 입력 목록 내 중복입니다
	ErrorKindDuplicate ValidationErrorKind = "duplicate"

	// ErrorKindConflict는 다른 컬렉션에 이미 존재하는 MAC입니다
	ErrorKindConflict ValidationErrorKind = "conflict"

	// ErrorKindIndeterminate는 조회 실패로 검증을 완료하지 못한 경우입니다.
	// fail-closed 정책에 따라 수락이 아닌 거부로 처리됩니다.
	ErrorKindIndeterminate ValidationErrorKind = "indeterminate"
)

// ValidationError는 목록 검증에서 발견된 문제 하나를 나타냅니다
type ValidationError struct {
	MAC     string              `json:"mac"`
	Kind    ValidationErrorKind `json:"kind"`
	Message string              `json:"message"`
}

// ValidationResult는 목록 검증의 집계 결과입니다.
// 예상 가능한 문제(형식, 중복, 충돌)는 에러가 아닌 이 구조체로 반환됩니다.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// add는 에러를 추가하고 결과를 무효로 표시합니다
func (r *ValidationResult) add(mac string, kind ValidationErrorKind, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{MAC: mac, Kind: kind, Message: message})
}

// ValidateList는 MAC 목록 전체를 검증합니다. 각 MAC에 대해 형식 검사,
// 목록 내 중복 검사, 컨텍스트 인지 유일성 검사를 순서대로 수행하며,
// 첫 에러에서 멈추지 않고 모든 문제를 집계합니다. 사용자는 한 번에
// 전체 문제 목록을 확인할 수 있습니다.
func (c *UniquenessChecker) ValidateList(ctx context.Context, macs []string, callCtx CallContext, excludeID int) ValidationResult {
	result := ValidationResult{Valid: true}
	seen := make(map[string]struct{}, len(macs))

	for _, mac := range macs {
		if !macaddr.IsValidFormat(mac) {
			result.add(mac, ErrorKindFormat, fmt.Sprintf("유효하지 않은 MAC 주소 형식: %s", mac))
			continue
		}

		key := macaddr.Canonical(mac)
		if _, dup := seen[key]; dup {
			result.add(mac, ErrorKindDuplicate, fmt.Sprintf("입력 목록 내 중복된 MAC: %s", key))
			continue
		}
		seen[key] = struct{}{}

		exists, message, err := c.CheckExistsWithContext(ctx, key, callCtx, excludeID)
		if err != nil {
			// 조회 실패는 수락으로 이어지면 안 됨
			result.add(mac, ErrorKindIndeterminate, fmt.Sprintf("MAC %s 검증을 완료할 수 없음", key))
			c.logger.WithError(err).WithField("mac", key).Error("MAC 유일성 검증 실패")
			continue
		}
		if exists {
			result.add(mac, ErrorKindConflict, message)
		}
	}

	return result
}
