package usecases

import (
	"context"
	"testing"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterInventoryBoxUseCase(t *testing.T) {
	ctx := context.Background()
	const mac = "11:22:33:44:55:66"

	t.Run("신규 박스 등록 성공", func(t *testing.T) {
		repos := newTestRepos()
		repos.expectNoConflicts(mac, 0)
		repos.boxes.On("Create", mock.Anything, mock.AnythingOfType("*entities.InventoryBox")).Return(4, nil)

		uc := NewRegisterInventoryBoxUseCase(repos.boxes, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterInventoryBoxInput{
			BoxNumber:     "BOX-001",
			EquipmentName: "라우터",
			Model:         "RX-10",
			MACText:       "112233445566",
		})

		require.NoError(t, err)
		assert.True(t, output.Result.Valid)
		assert.Equal(t, 4, output.ID)
		assert.Equal(t, []string{mac}, output.MACs)
	})

	t.Run("복구 리포트의 MAC은 박스 등록 허용", func(t *testing.T) {
		repos := newTestRepos()
		repos.equipment.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.Equipment{}, nil)
		repos.boxes.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.InventoryBox{}, nil)
		repos.defects.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.DefectReport{}, nil)
		repos.recovery.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.RecoveryReport{
			{ID: 7, Equipment: "router", Problem: "fan", MACs: []string{mac}},
		}, nil)
		repos.boxes.On("Create", mock.Anything, mock.AnythingOfType("*entities.InventoryBox")).Return(9, nil)

		uc := NewRegisterInventoryBoxUseCase(repos.boxes, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterInventoryBoxInput{
			BoxNumber:     "BOX-002",
			EquipmentName: "복구 라우터",
			Model:         "RX-10",
			MACText:       mac,
		})

		require.NoError(t, err)
		assert.True(t, output.Result.Valid)
		assert.Equal(t, 9, output.ID)
		repos.boxes.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entities.InventoryBox"))
	})

	t.Run("장비에 이미 등록된 MAC은 거부", func(t *testing.T) {
		repos := newTestRepos()
		repos.equipment.On("FindByMAC", mock.Anything, mac, 0).Return([]entities.Equipment{
			{ID: 2, Name: "조립기", MAC: mac},
		}, nil)

		uc := NewRegisterInventoryBoxUseCase(repos.boxes, repos.newChecker(), testLogger())

		output, err := uc.Execute(ctx, RegisterInventoryBoxInput{
			BoxNumber:     "BOX-003",
			EquipmentName: "라우터",
			MACText:       mac,
		})

		require.NoError(t, err)
		assert.False(t, output.Result.Valid)
		require.Len(t, output.Result.Errors, 1)
		assert.Equal(t, services.ErrorKindConflict, output.Result.Errors[0].Kind)
		repos.boxes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
