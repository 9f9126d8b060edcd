package services

import (
	"context"
	"fmt"

	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"
	"equiptrack/internal/domain/macaddr"

	"github.com/sirupsen/logrus"
)

// Conflict는 특정 컬렉션에서 발견된 MAC 주소 충돌 하나를 나타냅니다
type Conflict struct {
	Collection entities.Collection `json:"collection"`
	RecordID   int                 `json:"record_id"`
	Display    string              `json:"display"`
	MAC        string              `json:"mac"`
}

// ConflictSet은 하나의 MAC에 대해 모든 컬렉션에서 발견된 충돌들입니다
type ConflictSet struct {
	MAC       string     `json:"mac"`
	Conflicts []Conflict `json:"conflicts"`
}

// HasConflict는 충돌이 하나라도 있는지 확인합니다
func (s *ConflictSet) HasConflict() bool {
	return len(s.Conflicts) > 0
}

// ByCollection은 충돌들을 컬렉션별로 그룹화합니다
func (s *ConflictSet) ByCollection() map[entities.Collection][]Conflict {
	grouped := make(map[entities.Collection][]Conflict)
	for _, c := range s.Conflicts {
		grouped[c.Collection] = append(grouped[c.Collection], c)
	}
	return grouped
}

// ConflictFinder는 여러 컬렉션을 가로질러 MAC 주소 충돌을 탐색하는
// 도메인 서비스입니다. 컬렉션별 조회는 테이블 기반 루프로 수행됩니다.
type ConflictFinder struct {
	equipment  interfaces.EquipmentRepository
	boxes      interfaces.InventoryBoxRepository
	defects    interfaces.DefectReportRepository
	recoveries interfaces.RecoveryReportRepository
	rma        interfaces.RMARecordRepository
	includeRMA bool
	logger     *logrus.Logger
}

// NewConflictFinder는 새로운 ConflictFinder를 생성합니다.
// includeRMA가 true이면 표시용 충돌 탐색에 RMA 컬렉션도 포함됩니다.
func NewConflictFinder(
	equipment interfaces.EquipmentRepository,
	boxes interfaces.InventoryBoxRepository,
	defects interfaces.DefectReportRepository,
	recoveries interfaces.RecoveryReportRepository,
	rma interfaces.RMARecordRepository,
	includeRMA bool,
	logger *logrus.Logger,
) *ConflictFinder {
	return &ConflictFinder{
		equipment:  equipment,
		boxes:      boxes,
		defects:    defects,
		recoveries: recoveries,
		rma:        rma,
		includeRMA: includeRMA,
		logger:     logger,
	}
}

// collectionLookup은 테이블 기반 루프의 한 항목입니다
type collectionLookup struct {
	collection entities.Collection
	lookup     func(ctx context.Context, mac string, excludeID int) ([]Conflict, error)
}

// lookups는 탐색 대상 컬렉션 테이블을 고정된 순서로 반환합니다
func (f *ConflictFinder) lookups() []collectionLookup {
	table := []collectionLookup{
		{entities.CollectionEquipment, f.findInEquipment},
		{entities.CollectionInventoryBox, f.findInBoxes},
		{entities.CollectionDefectReport, f.findInDefects},
		{entities.CollectionRecovery, f.findInRecoveries},
	}
	if f.includeRMA {
		table = append(table, collectionLookup{entities.CollectionRMA, f.findInRMA})
	}
	return table
}

// FindConflicts는 모든 컬렉션에서 대상 MAC의 충돌을 탐색합니다.
// 표시용 경로이므로 개별 컬렉션 조회 실패는 로깅 후 "해당 컬렉션에서
// 충돌 없음"으로 처리합니다. 엄격한 검증은 FindInCollection을 사용하는
// UniquenessChecker 경로에서 수행됩니다.
func (f *ConflictFinder) FindConflicts(ctx context.Context, mac string, excludeID int) *ConflictSet {
	canonical := macaddr.Canonical(mac)
	set := &ConflictSet{MAC: canonical}

	for _, entry := range f.lookups() {
		conflicts, err := entry.lookup(ctx, canonical, excludeID)
		if err != nil {
			f.logger.WithError(err).WithFields(logrus.Fields{
				"collection": entry.collection,
				"mac":        canonical,
			}).Warn("컬렉션 충돌 조회 실패, 해당 컬렉션은 건너뜀")
			continue
		}
		set.Conflicts = append(set.Conflicts, conflicts...)
	}

	return set
}

// FindInCollection은 단일 컬렉션에서 충돌을 탐색합니다.
// 조회 실패는 그대로 전파됩니다 (fail-closed 경로).
func (f *ConflictFinder) FindInCollection(ctx context.Context, collection entities.Collection, mac string, excludeID int) ([]Conflict, error) {
	canonical := macaddr.Canonical(mac)
	for _, entry := range f.lookups() {
		if entry.collection == collection {
			return entry.lookup(ctx, canonical, excludeID)
		}
	}
	return nil, errors.NewSystemError(fmt.Sprintf("알 수 없는 컬렉션: %s", collection), nil)
}

func (f *ConflictFinder) findInEquipment(ctx context.Context, mac string, excludeID int) ([]Conflict, error) {
	records, err := f.equipment.FindByMAC(ctx, mac, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, r := range records {
		conflicts = append(conflicts, Conflict{
			Collection: entities.CollectionEquipment,
			RecordID:   r.ID,
			Display:    fmt.Sprintf("%s (%s)", r.Name, r.Model),
			MAC:        mac,
		})
	}
	return conflicts, nil
}

func (f *ConflictFinder) findInBoxes(ctx context.Context, mac string, excludeID int) ([]Conflict, error) {
	records, err := f.boxes.FindByMAC(ctx, mac, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, r := range records {
		conflicts = append(conflicts, Conflict{
			Collection: entities.CollectionInventoryBox,
			RecordID:   r.ID,
			Display:    fmt.Sprintf("박스 %s - %s", r.BoxNumber, r.EquipmentName),
			MAC:        mac,
		})
	}
	return conflicts, nil
}

func (f *ConflictFinder) findInDefects(ctx context.Context, mac string, excludeID int) ([]Conflict, error) {
	records, err := f.defects.FindByMAC(ctx, mac, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, r := range records {
		conflicts = append(conflicts, Conflict{
			Collection: entities.CollectionDefectReport,
			RecordID:   r.ID,
			Display:    fmt.Sprintf("%s (%s, %d개)", r.Equipment, r.Model, r.Quantity),
			MAC:        mac,
		})
	}
	return conflicts, nil
}

func (f *ConflictFinder) findInRecoveries(ctx context.Context, mac string, excludeID int) ([]Conflict, error) {
	records, err := f.recoveries.FindByMAC(ctx, mac, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, r := range records {
		conflicts = append(conflicts, Conflict{
			Collection: entities.CollectionRecovery,
			RecordID:   r.ID,
			Display:    fmt.Sprintf("%s - %s", r.Equipment, r.Problem),
			MAC:        mac,
		})
	}
	return conflicts, nil
}

func (f *ConflictFinder) findInRMA(ctx context.Context, mac string, excludeID int) ([]Conflict, error) {
	records, err := f.rma.FindByMAC(ctx, mac, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, r := range records {
		conflicts = append(conflicts, Conflict{
			Collection: entities.CollectionRMA,
			RecordID:   r.ID,
			Display:    fmt.Sprintf("RMA %s - %s", r.RMANumber, r.Equipment),
			MAC:        mac,
		})
	}
	return conflicts, nil
}
