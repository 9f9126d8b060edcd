package usecases

import (
	"context"
	"testing"
	"time"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testRepos는 유일성 검사에 필요한 모든 mock 저장소 묶음입니다
type testRepos struct {
	equipment *MockEquipmentRepository
	boxes     *MockInventoryBoxRepository
	defects   *MockDefectReportRepository
	recovery  *MockRecoveryReportRepository
	rma       *MockRMARecordRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		equipment: new(MockEquipmentRepository),
		boxes:     new(MockInventoryBoxRepository),
		defects:   new(MockDefectReportRepository),
		recovery:  new(MockRecoveryReportRepository),
		rma:       new(MockRMARecordRepository),
	}
}

// expectNoConflicts는 모든 컬렉션 조회가 빈 결과를 반환하도록 설정합니다
func (r *testRepos) expectNoConflicts(mac string, excludeID int) {
	r.equipment.On("FindByMAC", mock.Anything, mac, excludeID).Return([]entities.Equipment{}, nil)
	r.boxes.On("FindByMAC", mock.Anything, mac, excludeID).Return([]entities.InventoryBox{}, nil)
	r.defects.On("FindByMAC", mock.Anything, mac, excludeID).Return([]entities.DefectReport{}, nil)
	r.recovery.On("FindByMAC", mock.Anything, mac, excludeID).Return([]entities.RecoveryReport{}, nil)
}

func (r *testRepos) newChecker() *services.UniquenessChecker {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	finder := services.NewConflictFinder(r.equipment, r.boxes, r.defects, r.recovery, r.rma, false, logger)
	return services.NewUniquenessChecker(finder, logger)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func TestRegisterEquipmentUseCase(t *testing.T) {
	ctx := context.Background()
	const mac = "AA:BB:CC:DD:EE:FF"

	t.Run("신규 장비 등록 성공", func(t *testing.T) {
		repos := newTestRepos()
		repos.expectNoConflicts(mac, 0)
		repos.equipment.On("Create", mock.Anything, mock.AnythingOfType("*entities.Equipment")).Return(7, nil)

		uc := NewRegisterEquipmentUseCase(repos.equipment, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterEquipmentInput{
			Name:  "조립기 3호",
			Model: "AX-200",
			MAC:   "aabbccddeeff", // 정규화 전 형태
		})

		require.NoError(t, err)
		assert.True(t, output.Result.Valid)
		assert.Equal(t, 7, output.ID)
		repos.equipment.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entities.Equipment"))
	})

	t.Run("이미 등록된 MAC은 거부", func(t *testing.T) {
		repos := newTestRepos()
		repos.equipment.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.Equipment{
			{ID: 3, Name: "기존 장비", MAC: mac, CreatedAt: time.Now()},
		}, nil)

		uc := NewRegisterEquipmentUseCase(repos.equipment, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterEquipmentInput{
			Name: "새 장비",
			MAC:  mac,
		})

		require.NoError(t, err)
		assert.False(t, output.Result.Valid)
		require.Len(t, output.Result.Errors, 1)
		assert.Equal(t, services.ErrorKindConflict, output.Result.Errors[0].Kind)
		assert.Contains(t, output.Result.Errors[0].Message, "기존 장비")
		repos.equipment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("형식 오류는 저장 없이 거부", func(t *testing.T) {
		repos := newTestRepos()
		uc := NewRegisterEquipmentUseCase(repos.equipment, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterEquipmentInput{
			Name: "장비",
			MAC:  "ZZ",
		})

		require.NoError(t, err)
		assert.False(t, output.Result.Valid)
		assert.Equal(t, services.ErrorKindFormat, output.Result.Errors[0].Kind)
		repos.equipment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("수정 시 자기 자신은 충돌에서 제외", func(t *testing.T) {
		repos := newTestRepos()
		repos.expectNoConflicts(mac, 5)
		repos.equipment.On("Update", mock.Anything, mock.AnythingOfType("*entities.Equipment")).Return(nil)

		uc := NewRegisterEquipmentUseCase(repos.equipment, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterEquipmentInput{
			ID:   5,
			Name: "장비 수정",
			MAC:  mac,
		})

		require.NoError(t, err)
		assert.True(t, output.Result.Valid)
		assert.Equal(t, 5, output.ID)
		repos.equipment.AssertCalled(t, "FindByMAC", mock.Anything, mac, 5)
		repos.equipment.AssertCalled(t, "Update", mock.Anything, mock.AnythingOfType("*entities.Equipment"))
	})

	t.Run("복구 리포트의 MAC은 생산 재투입 허용", func(t *testing.T) {
		repos := newTestRepos()
		repos.equipment.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.Equipment{}, nil)
		repos.boxes.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.InventoryBox{}, nil)
		repos.defects.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.DefectReport{}, nil)
		repos.recovery.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.RecoveryReport{
			{ID: 11, Equipment: "복구된 장비", MACs: []string{mac}},
		}, nil)
		repos.equipment.On("Create", mock.Anything, mock.AnythingOfType("*entities.Equipment")).Return(8, nil)

		uc := NewRegisterEquipmentUseCase(repos.equipment, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterEquipmentInput{
			Name: "재투입 장비",
			MAC:  mac,
		})

		require.NoError(t, err)
		assert.True(t, output.Result.Valid)
		assert.Equal(t, 8, output.ID)
	})
}
