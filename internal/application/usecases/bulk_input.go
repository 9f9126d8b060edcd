package usecases

import (
	"equiptrack/internal/domain/macaddr"
	"equiptrack/internal/domain/services"
	"fmt"
)

// parseMACText는 붙여넣기된 원문 텍스트를 개별 MAC 목록으로 분리합니다.
// 정규화에 실패한 토큰은 형식 에러로 변환되어 반환됩니다.
func parseMACText(text string) ([]string, []services.ValidationError) {
	macs, invalid := macaddr.ParseBulk(text)

	var errs []services.ValidationError
	for _, token := range invalid {
		errs = append(errs, services.ValidationError{
			MAC:     token.Raw,
			Kind:    services.ErrorKindFormat,
			Message: fmt.Sprintf("유효하지 않은 MAC 주소 형식: %s", token.Raw),
		})
	}
	return macs, errs
}

// mergeResults는 형식 에러와 유일성 검증 결과를 하나로 합칩니다
func mergeResults(formatErrs []services.ValidationError, result services.ValidationResult) services.ValidationResult {
	if len(formatErrs) == 0 {
		return result
	}
	return services.ValidationResult{
		Valid:  false,
		Errors: append(formatErrs, result.Errors...),
	}
}
