package interfaces

import (
	"context"
	"os"
	"time"
)

// FileSystem은 리포트 출력 경로 준비에 필요한 파일 시스템 작업을
// 추상화하는 인터페이스입니다
type FileSystem interface {
	// MkdirAll은 디렉토리를 재귀적으로 생성합니다
	MkdirAll(path string, perm os.FileMode) error
}

// Clock은 시간 관련 작업을 추상화하는 인터페이스입니다
type Clock interface {
	// Now는 현재 시간을 반환합니다
	Now() time.Time
}

// ReportStateStore는 일일 리포트 생성 상태를 기록하는 로컬 저장소입니다.
// "오늘 이미 실행했는지" 멱등성 확인에 사용됩니다.
type ReportStateStore interface {
	// WasGenerated는 해당 날짜의 리포트가 이미 생성되었는지 확인합니다
	WasGenerated(ctx context.Context, date time.Time) (bool, error)

	// MarkGenerated는 해당 날짜의 리포트 생성을 기록합니다
	MarkGenerated(ctx context.Context, date time.Time, path string) error

	// Close는 저장소 연결을 정리합니다
	Close() error
}
