package usecases

import (
	"context"
	"testing"

	"equiptrack/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefectReportUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("붙여넣기 텍스트에서 MAC 분리 후 등록", func(t *testing.T) {
		repos := newTestRepos()
		repos.expectNoConflicts("AA:BB:CC:DD:EE:FF", 0)
		repos.expectNoConflicts("C8:5A:9F:C7:B9:C0", 0)
		repos.defects.On("Create", mock.Anything, mock.AnythingOfType("*entities.DefectReport")).Return(5, nil)

		uc := NewRegisterDefectReportUseCase(repos.defects, repos.newChecker(), testLogger())

		// 콜론 형식과 콜론 없는 형식이 섞인 입력
		output, err := uc.Execute(ctx, RegisterDefectReportInput{
			Equipment: "프레스기",
			Model:     "P-1",
			Quantity:  2,
			MACText:   "AA:BB:CC:DD:EE:FF\nc85a9fc7b9c0",
		})

		require.NoError(t, err)
		assert.True(t, output.Result.Valid)
		assert.Equal(t, 5, output.ID)
		assert.Equal(t, []string{"AA:BB:CC:DD:EE:FF", "C8:5A:9F:C7:B9:C0"}, output.MACs)
	})

	t.Run("수량과 MAC 개수 불일치는 거부", func(t *testing.T) {
		repos := newTestRepos()
		uc := NewRegisterDefectReportUseCase(repos.defects, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterDefectReportInput{
			Equipment: "프레스기",
			Quantity:  3,
			MACText:   "AA:BB:CC:DD:EE:FF",
		})

		require.NoError(t, err)
		assert.False(t, output.Result.Valid)
		repos.defects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("정규화 불가능한 토큰은 형식 에러로 집계", func(t *testing.T) {
		repos := newTestRepos()
		repos.expectNoConflicts("AA:BB:CC:DD:EE:FF", 0)

		uc := NewRegisterDefectReportUseCase(repos.defects, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterDefectReportInput{
			Equipment: "프레스기",
			Quantity:  1,
			MACText:   "AA:BB:CC:DD:EE:FF, not-a-mac",
		})

		require.NoError(t, err)
		assert.False(t, output.Result.Valid)

		found := false
		for _, e := range output.Result.Errors {
			if e.Kind == services.ErrorKindFormat {
				found = true
			}
		}
		assert.True(t, found)
		repos.defects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
