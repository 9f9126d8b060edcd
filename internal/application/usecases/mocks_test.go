package usecases

import (
	"context"
	"time"

	"equiptrack/internal/domain/entities"

	"github.com/stretchr/testify/mock"
)

// Mock 구현체들

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.Equipment, error) {
	args := m.Called(ctx, mac, excludeID)
	return args.Get(0).([]entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int) (*entities.Equipment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context) ([]entities.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Create(ctx context.Context, equipment *entities.Equipment) (int, error) {
	args := m.Called(ctx, equipment)
	return args.Int(0), args.Error(1)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, equipment *entities.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

func (m *MockEquipmentRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockInventoryBoxRepository struct {
	mock.Mock
}

func (m *MockInventoryBoxRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.InventoryBox, error) {
	args := m.Called(ctx, mac, excludeID)
	return args.Get(0).([]entities.InventoryBox), args.Error(1)
}

func (m *MockInventoryBoxRepository) GetByID(ctx context.Context, id int) (*entities.InventoryBox, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entities.InventoryBox), args.Error(1)
}

func (m *MockInventoryBoxRepository) List(ctx context.Context) ([]entities.InventoryBox, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.InventoryBox), args.Error(1)
}

func (m *MockInventoryBoxRepository) Create(ctx context.Context, box *entities.InventoryBox) (int, error) {
	args := m.Called(ctx, box)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryBoxRepository) Update(ctx context.Context, box *entities.InventoryBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockInventoryBoxRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryBoxRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockDefectReportRepository struct {
	mock.Mock
}

func (m *MockDefectReportRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.DefectReport, error) {
	args := m.Called(ctx, mac, excludeID)
	return args.Get(0).([]entities.DefectReport), args.Error(1)
}

func (m *MockDefectReportRepository) GetByID(ctx context.Context, id int) (*entities.DefectReport, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entities.DefectReport), args.Error(1)
}

func (m *MockDefectReportRepository) List(ctx context.Context) ([]entities.DefectReport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.DefectReport), args.Error(1)
}

func (m *MockDefectReportRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.DefectReport, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]entities.DefectReport), args.Error(1)
}

func (m *MockDefectReportRepository) Create(ctx context.Context, report *entities.DefectReport) (int, error) {
	args := m.Called(ctx, report)
	return args.Int(0), args.Error(1)
}

func (m *MockDefectReportRepository) Update(ctx context.Context, report *entities.DefectReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockDefectReportRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDefectReportRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockRecoveryReportRepository struct {
	mock.Mock
}

func (m *MockRecoveryReportRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.RecoveryReport, error) {
	args := m.Called(ctx, mac, excludeID)
	return args.Get(0).([]entities.RecoveryReport), args.Error(1)
}

func (m *MockRecoveryReportRepository) GetByID(ctx context.Context, id int) (*entities.RecoveryReport, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entities.RecoveryReport), args.Error(1)
}

func (m *MockRecoveryReportRepository) List(ctx context.Context) ([]entities.RecoveryReport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.RecoveryReport), args.Error(1)
}

func (m *MockRecoveryReportRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.RecoveryReport, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]entities.RecoveryReport), args.Error(1)
}

func (m *MockRecoveryReportRepository) Create(ctx context.Context, report *entities.RecoveryReport) (int, error) {
	args := m.Called(ctx, report)
	return args.Int(0), args.Error(1)
}

func (m *MockRecoveryReportRepository) Update(ctx context.Context, report *entities.RecoveryReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockRecoveryReportRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecoveryReportRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockRMARecordRepository struct {
	mock.Mock
}

func (m *MockRMARecordRepository) FindByMAC(ctx context.Context, mac string, excludeID int) ([]entities.RMARecord, error) {
	args := m.Called(ctx, mac, excludeID)
	return args.Get(0).([]entities.RMARecord), args.Error(1)
}

func (m *MockRMARecordRepository) GetByID(ctx context.Context, id int) (*entities.RMARecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entities.RMARecord), args.Error(1)
}

func (m *MockRMARecordRepository) List(ctx context.Context) ([]entities.RMARecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.RMARecord), args.Error(1)
}

func (m *MockRMARecordRepository) Create(ctx context.Context, record *entities.RMARecord) (int, error) {
	args := m.Called(ctx, record)
	return args.Int(0), args.Error(1)
}

func (m *MockRMARecordRepository) Update(ctx context.Context, record *entities.RMARecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRMARecordRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRMARecordRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockProductionRepository struct {
	mock.Mock
}

func (m *MockProductionRepository) Create(ctx context.Context, entry *entities.ProductionEntry) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}

func (m *MockProductionRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.ProductionEntry, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]entities.ProductionEntry), args.Error(1)
}

func (m *MockProductionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockReportStateStore struct {
	mock.Mock
}

func (m *MockReportStateStore) WasGenerated(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportStateStore) MarkGenerated(ctx context.Context, date time.Time, path string) error {
	args := m.Called(ctx, date, path)
	return args.Error(0)
}

func (m *MockReportStateStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockClock struct {
	mock.Mock
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
