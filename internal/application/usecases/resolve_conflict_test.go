package usecases

import (
	"context"
	"testing"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newResolveUseCase(repos *testRepos) *ResolveConflictUseCase {
	return NewResolveConflictUseCase(
		repos.equipment,
		repos.boxes,
		repos.defects,
		repos.recovery,
		repos.rma,
		testLogger(),
	)
}

func TestResolveConflictUseCase_RemoveMAC(t *testing.T) {
	ctx := context.Background()
	const mac = "AA:BB:CC:DD:EE:FF"

	t.Run("불량 리포트에서 MAC 제거 시 수량 재계산", func(t *testing.T) {
		repos := newTestRepos()
		report := &entities.DefectReport{
			ID:        4,
			Equipment: "프레스기",
			Quantity:  2,
			MACs:      []string{mac, "11:22:33:44:55:66"},
		}
		repos.defects.On("GetByID", mock.Anything, 4).Return(report, nil)
		repos.defects.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.DefectReport) bool {
			return r.Quantity == 1 && len(r.MACs) == 1
		})).Return(nil)

		uc := newResolveUseCase(repos)
		output, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionDefectReport),
			RecordID:   4,
			MAC:        mac,
			Action:     ActionRemoveMAC,
			Role:       RoleUser,
		})

		require.NoError(t, err)
		assert.True(t, output.Resolved)
		repos.defects.AssertExpectations(t)
	})

	t.Run("재고 박스에서 MAC 제거", func(t *testing.T) {
		repos := newTestRepos()
		box := &entities.InventoryBox{ID: 2, BoxNumber: "B-17", MACs: []string{mac}}
		repos.boxes.On("GetByID", mock.Anything, 2).Return(box, nil)
		repos.boxes.On("Update", mock.Anything, mock.AnythingOfType("*entities.InventoryBox")).Return(nil)

		uc := newResolveUseCase(repos)
		output, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionInventoryBox),
			RecordID:   2,
			MAC:        mac,
			Action:     ActionRemoveMAC,
			Role:       RoleUser,
		})

		require.NoError(t, err)
		assert.True(t, output.Resolved)
	})

	t.Run("RMA 연결 문자열에서 MAC 제거", func(t *testing.T) {
		repos := newTestRepos()
		record := &entities.RMARecord{ID: 9, RMANumber: "RMA-100", MACs: mac + "|11:22:33:44:55:66"}
		repos.rma.On("GetByID", mock.Anything, 9).Return(record, nil)
		repos.rma.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.RMARecord) bool {
			return r.MACs == "11:22:33:44:55:66"
		})).Return(nil)

		uc := newResolveUseCase(repos)
		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionRMA),
			RecordID:   9,
			MAC:        mac,
			Action:     ActionRemoveMAC,
			Role:       RoleUser,
		})

		require.NoError(t, err)
		repos.rma.AssertExpectations(t)
	})

	t.Run("단일 MAC 컬렉션에서는 MAC 제거 불가", func(t *testing.T) {
		repos := newTestRepos()
		uc := newResolveUseCase(repos)

		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   1,
			MAC:        mac,
			Action:     ActionRemoveMAC,
			Role:       RoleUser,
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("레코드에 없는 MAC 제거는 NotFound", func(t *testing.T) {
		repos := newTestRepos()
		box := &entities.InventoryBox{ID: 2, BoxNumber: "B-17", MACs: []string{"11:22:33:44:55:66"}}
		repos.boxes.On("GetByID", mock.Anything, 2).Return(box, nil)

		uc := newResolveUseCase(repos)
		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionInventoryBox),
			RecordID:   2,
			MAC:        mac,
			Action:     ActionRemoveMAC,
			Role:       RoleUser,
		})

		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestResolveConflictUseCase_Edit(t *testing.T) {
	ctx := context.Background()
	const mac = "AA:BB:CC:DD:EE:FF"

	t.Run("관리자 편집 액션은 대상 참조를 반환하고 데이터를 변경하지 않음", func(t *testing.T) {
		repos := newTestRepos()
		repos.defects.On("GetByID", mock.Anything, 4).Return(&entities.DefectReport{
			ID: 4, Equipment: "프레스기", Model: "PX-1", Quantity: 2, MACs: []string{mac},
		}, nil)

		uc := newResolveUseCase(repos)
		output, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionDefectReport),
			RecordID:   4,
			MAC:        mac,
			Action:     ActionEdit,
			Role:       RoleAdmin,
		})

		require.NoError(t, err)
		assert.False(t, output.Resolved)
		require.NotNil(t, output.Reference)
		assert.Equal(t, string(entities.CollectionDefectReport), output.Reference.Collection)
		assert.Equal(t, 4, output.Reference.RecordID)
		assert.Equal(t, mac, output.Reference.MAC)
		assert.Contains(t, output.Reference.Display, "프레스기")
		repos.defects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		repos.defects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("일반 사용자는 편집 액션 불가", func(t *testing.T) {
		repos := newTestRepos()
		uc := newResolveUseCase(repos)

		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   3,
			MAC:        mac,
			Action:     ActionEdit,
			Role:       RoleUser,
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		repos.equipment.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("존재하지 않는 레코드 편집은 에러 전파", func(t *testing.T) {
		repos := newTestRepos()
		repos.equipment.On("GetByID", mock.Anything, 99).
			Return((*entities.Equipment)(nil), errors.NewNotFoundError("장비 ID 99를 찾을 수 없음"))

		uc := newResolveUseCase(repos)
		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   99,
			MAC:        mac,
			Action:     ActionEdit,
			Role:       RoleAdmin,
		})

		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestResolveConflictUseCase_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	const mac = "AA:BB:CC:DD:EE:FF"

	t.Run("관리자 확인 후 레코드 삭제 성공", func(t *testing.T) {
		repos := newTestRepos()
		repos.equipment.On("Delete", mock.Anything, 3).Return(nil)

		uc := newResolveUseCase(repos)
		output, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   3,
			MAC:        mac,
			Action:     ActionDeleteRecord,
			Role:       RoleAdmin,
			Confirmed:  true,
		})

		require.NoError(t, err)
		assert.True(t, output.Resolved)
		repos.equipment.AssertCalled(t, "Delete", mock.Anything, 3)
	})

	t.Run("일반 사용자는 레코드 삭제 불가", func(t *testing.T) {
		repos := newTestRepos()
		uc := newResolveUseCase(repos)

		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   3,
			MAC:        mac,
			Action:     ActionDeleteRecord,
			Role:       RoleUser,
			Confirmed:  true,
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		repos.equipment.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("확인 없는 삭제는 거부", func(t *testing.T) {
		repos := newTestRepos()
		uc := newResolveUseCase(repos)

		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   3,
			MAC:        mac,
			Action:     ActionDeleteRecord,
			Role:       RoleAdmin,
			Confirmed:  false,
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("알 수 없는 액션은 거부", func(t *testing.T) {
		repos := newTestRepos()
		uc := newResolveUseCase(repos)

		_, err := uc.Execute(ctx, ResolveConflictInput{
			Collection: string(entities.CollectionEquipment),
			RecordID:   3,
			MAC:        mac,
			Action:     ResolveAction("archive"),
			Role:       RoleAdmin,
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
