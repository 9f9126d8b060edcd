// Package macaddr는 MAC 주소의 정규화, 형식 검증, 대량 입력 파싱을 담당합니다.
// 모든 함수는 순수 함수이며 부작용이 없습니다.
package macaddr

import (
	"regexp"
	"strings"
)

// CanonicalLength는 정규형 MAC 주소의 길이입니다 (XX:XX:XX:XX:XX:XX)
const CanonicalLength = 17

var formatPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)

// Normalize는 자유 형식 입력을 정규형 MAC 주소 문자열로 변환합니다.
// 16진수가 아닌 문자를 모두 제거하고, 대문자로 변환한 뒤 2자리마다
// 콜론을 삽입하며, 최대 17자로 자릅니다. 입력이 불완전해도 실패하지
// 않습니다 (사용자 타이핑 중간 상태 허용).
func Normalize(input string) string {
	var hex strings.Builder
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			hex.WriteRune(r)
		case r >= 'a' && r <= 'f':
			hex.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'F':
			hex.WriteRune(r)
		}
	}

	digits := hex.String()
	if len(digits) > 12 {
		digits = digits[:12]
	}

	var out strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%2 == 0 {
			out.WriteByte(':')
		}
		out.WriteByte(digits[i])
	}
	return out.String()
}

// IsValidFormat은 문자열이 정규형(콜론으로 구분된 6개의 2자리 16진수 그룹)인지
// 확인합니다. 대소문자는 구분하지 않습니다.
func IsValidFormat(mac string) bool {
	return formatPattern.MatchString(mac)
}

// Canonical은 비교 키로 사용할 대문자 정규형을 반환합니다
func Canonical(mac string) string {
	return strings.ToUpper(strings.TrimSpace(mac))
}

// Equal은 두 MAC 주소를 대소문자 무시하고 비교합니다
func Equal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// InvalidToken은 대량 입력에서 형식 검증에 실패한 토큰입니다.
// 원본 텍스트를 보존하여 호출자가 어떤 입력이 왜 실패했는지
// 그대로 보여줄 수 있게 합니다.
type InvalidToken struct {
	Raw        string
	Normalized string
}

var bulkSeparator = regexp.MustCompile(`[\n\r,|]+|\s{2,}`)

// ParseBulk는 붙여넣은 자유 형식 텍스트를 MAC 주소 후보들로 분리합니다.
// 줄바꿈, 쉼표, 파이프, 2개 이상의 연속 공백을 구분자로 사용하며,
// 구분자 없는 12자리 16진수 토큰은 콜론을 삽입해 재구성합니다.
// 유효한 정규형 MAC 목록과 실패한 토큰 목록을 함께 반환합니다.
func ParseBulk(text string) ([]string, []InvalidToken) {
	tokens := bulkSeparator.Split(text, -1)

	var valid []string
	var invalid []InvalidToken

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		candidate := token
		if isBareHex12(candidate) {
			candidate = insertColons(candidate)
		}

		normalized := Normalize(candidate)
		if IsValidFormat(normalized) {
			valid = append(valid, normalized)
		} else {
			invalid = append(invalid, InvalidToken{Raw: token, Normalized: normalized})
		}
	}

	return valid, invalid
}

// isBareHex12는 구분자 없는 12자리 16진수 문자열인지 확인합니다
func isBareHex12(s string) bool {
	if len(s) != 12 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// insertColons는 12자리 16진수 문자열에 2자리마다 콜론을 삽입합니다
func insertColons(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			out.WriteByte(':')
		}
		out.WriteString(s[i : i+2])
	}
	return out.String()
}
