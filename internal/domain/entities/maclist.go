package entities

import (
	"equiptrack/internal/domain/macaddr"
)

// duplicateInList는 목록 내에서 중복된 MAC을 찾습니다.
// 비교는 대문자 정규형 기준입니다.
func duplicateInList(macs []string) (string, bool) {
	seen := make(map[string]struct{}, len(macs))
	for _, mac := range macs {
		key := macaddr.Canonical(mac)
		if _, ok := seen[key]; ok {
			return mac, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}

// removeMAC은 목록에서 대상 MAC을 대소문자 무시하고 제거합니다
func removeMAC(macs []string, target string) []string {
	out := make([]string, 0, len(macs))
	for _, mac := range macs {
		if !macaddr.Equal(mac, target) {
			out = append(out, mac)
		}
	}
	return out
}

// containsFold는 목록에 대상 MAC이 있는지 대소문자 무시하고 확인합니다
func containsFold(macs []string, target string) bool {
	for _, mac := range macs {
		if macaddr.Equal(mac, target) {
			return true
		}
	}
	return false
}

// validateMACList는 목록의 모든 MAC이 정규형이고 중복이 없는지 검증합니다
func validateMACList(macs []string) error {
	for _, mac := range macs {
		if !macaddr.IsValidFormat(mac) {
			return ErrInvalidMacAddress
		}
	}
	if _, dup := duplicateInList(macs); dup {
		return ErrDuplicateMacInList
	}
	return nil
}
