package persistence

import (
	"encoding/json"

	"equiptrack/internal/domain/errors"
)

// MAC 배열 컬럼은 JSON 배열 문자열로 저장됩니다.
// 포함 조회는 MySQL의 JSON_CONTAINS로 수행되므로 저장 시
// 항상 정규형(대문자)이어야 합니다.

// encodeMACs는 MAC 목록을 JSON 컬럼 값으로 변환합니다
func encodeMACs(macs []string) (string, error) {
	if macs == nil {
		macs = []string{}
	}
	data, err := json.Marshal(macs)
	if err != nil {
		return "", errors.NewSystemError("MAC 목록 직렬화 실패", err)
	}
	return string(data), nil
}

// decodeMACs는 JSON 컬럼 값을 MAC 목록으로 변환합니다
func decodeMACs(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var macs []string
	if err := json.Unmarshal([]byte(data), &macs); err != nil {
		return nil, errors.NewSystemError("MAC 목록 역직렬화 실패", err)
	}
	return macs, nil
}
