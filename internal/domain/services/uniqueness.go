package services

import (
	"context"
	"fmt"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/macaddr"

	"github.com/sirupsen/logrus"
)

// CallContext는 검증을 호출한 화면의 컨텍스트입니다.
// 복구→생산 예외 정책은 이 값에 따라 결정됩니다.
type CallContext string

const (
	// ContextProduction은 생산(장비 등록) 화면입니다
	ContextProduction CallContext = "production"

	// ContextRecovery는 복구 리포트 화면입니다
	ContextRecovery CallContext = "recovery"

	// ContextOther는 알 수 없는 호출 컨텍스트입니다 (보수적 기본값)
	ContextOther CallContext = "other"
)

// ParseCallContext는 문자열을 CallContext로 변환합니다.
// 알 수 없는 값은 ContextOther로 처리됩니다.
func ParseCallContext(s string) CallContext {
	switch CallContext(s) {
	case ContextProduction:
		return ContextProduction
	case ContextRecovery:
		return ContextRecovery
	default:
		return ContextOther
	}
}

// conflictPolicy는 (발견된 컬렉션, 호출 컨텍스트) -> 허용 여부 테이블입니다.
// true는 해당 컬렉션에서 MAC이 발견되어도 허용한다는 의미입니다.
// 유일한 허용 조합은 복구 리포트에 있는 MAC이 생산 컨텍스트로
// 진입하는 경우입니다 (복구 장비의 생산 재투입).
var conflictPolicy = map[entities.Collection]map[CallContext]bool{
	entities.CollectionEquipment: {
		ContextProduction: false,
		ContextRecovery:   false,
		ContextOther:      false,
	},
	entities.CollectionInventoryBox: {
		ContextProduction: false,
		ContextRecovery:   false,
		ContextOther:      false,
	},
	entities.CollectionDefectReport: {
		ContextProduction: false,
		ContextRecovery:   false,
		ContextOther:      false,
	},
	entities.CollectionRecovery: {
		ContextProduction: true,
		ContextRecovery:   false,
		ContextOther:      false,
	},
}

// PolicyAllows는 정책 테이블을 조회합니다.
// 테이블에 없는 조합은 거부합니다.
func PolicyAllows(collection entities.Collection, callCtx CallContext) bool {
	byContext, ok := conflictPolicy[collection]
	if !ok {
		return false
	}
	return byContext[callCtx]
}

// strictOrder는 엄격 검사가 순회하는 컬렉션들의 고정 순서입니다
var strictOrder = []entities.Collection{
	entities.CollectionEquipment,
	entities.CollectionInventoryBox,
	entities.CollectionDefectReport,
}

// UniquenessChecker는 MAC 주소 유일성 검사를 수행하는 도메인 서비스입니다.
// 조회 실패는 절대 "사용 가능"으로 해석되지 않습니다 (fail-closed).
type UniquenessChecker struct {
	finder *ConflictFinder
	logger *logrus.Logger
}

// NewUniquenessChecker는 새로운 UniquenessChecker를 생성합니다
func NewUniquenessChecker(finder *ConflictFinder, logger *logrus.Logger) *UniquenessChecker {
	return &UniquenessChecker{
		finder: finder,
		logger: logger,
	}
}

// CheckExists는 장비, 재고 박스, 불량 리포트 순으로 MAC 사용 여부를
// 검사합니다. 사용 중이면 true와 충돌 레코드를 설명하는 메시지를
// 반환합니다. 조회 실패 시 INDETERMINATE 에러가 반환되며 호출자는
// MAC을 수락해서는 안 됩니다.
func (c *UniquenessChecker) CheckExists(ctx context.Context, mac string, excludeID int) (bool, string, error) {
	canonical := macaddr.Canonical(mac)

	for _, collection := range strictOrder {
		conflicts, err := c.finder.FindInCollection(ctx, collection, canonical, excludeID)
		if err != nil {
			return false, "", errors.NewIndeterminateError(
				fmt.Sprintf("%s 컬렉션 조회 실패로 MAC 검증을 완료할 수 없음", collection.DisplayName()), err)
		}
		if len(conflicts) > 0 {
			return true, conflictMessage(canonical, conflicts[0]), nil
		}
	}

	return false, "", nil
}

// CheckExistsWithContext는 CheckExists에 더해 복구 리포트 컬렉션을
// 정책 테이블에 따라 검사합니다. 복구 리포트에서 발견된 MAC은
// 생산 컨텍스트에서만 허용됩니다.
func (c *UniquenessChecker) CheckExistsWithContext(ctx context.Context, mac string, callCtx CallContext, excludeID int) (bool, string, error) {
	exists, message, err := c.CheckExists(ctx, mac, excludeID)
	if err != nil || exists {
		return exists, message, err
	}

	canonical := macaddr.Canonical(mac)
	conflicts, err := c.finder.FindInCollection(ctx, entities.CollectionRecovery, canonical, excludeID)
	if err != nil {
		return false, "", errors.NewIndeterminateError("복구 리포트 조회 실패로 MAC 검증을 완료할 수 없음", err)
	}

	if len(conflicts) > 0 && !PolicyAllows(entities.CollectionRecovery, callCtx) {
		return true, conflictMessage(canonical, conflicts[0]), nil
	}

	if len(conflicts) > 0 {
		c.logger.WithFields(logrus.Fields{
			"mac":     canonical,
			"context": callCtx,
		}).Info("복구 리포트의 MAC이 생산 컨텍스트로 재투입됨")
	}

	return false, "", nil
}

// conflictMessage는 충돌 레코드를 설명하는 메시지를 생성합니다
func conflictMessage(mac string, conflict Conflict) string {
	return fmt.Sprintf("MAC %s은(는) 이미 %s에 등록됨: %s (ID %d)",
		mac, conflict.Collection.DisplayName(), conflict.Display, conflict.RecordID)
}
