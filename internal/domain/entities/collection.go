package entities

// Collection은 MAC 주소를 보유하는 레코드 컬렉션을 나타냅니다
type Collection string

const (
	CollectionEquipment    Collection = "equipment"
	CollectionInventoryBox Collection = "inventory_box"
	CollectionDefectReport Collection = "defect_report"
	CollectionRecovery     Collection = "recovery_report"
	CollectionRMA          Collection = "rma_record"
)

// AllCollections는 컬렉션들을 표시 순서대로 나열합니다
var AllCollections = []Collection{
	CollectionEquipment,
	CollectionInventoryBox,
	CollectionDefectReport,
	CollectionRecovery,
	CollectionRMA,
}

// DisplayName은 사용자에게 보여줄 컬렉션 이름을 반환합니다
func (c Collection) DisplayName() string {
	switch c {
	case CollectionEquipment:
		return "장비"
	case CollectionInventoryBox:
		return "재고 박스"
	case CollectionDefectReport:
		return "불량 리포트"
	case CollectionRecovery:
		return "복구 리포트"
	case CollectionRMA:
		return "RMA"
	default:
		return string(c)
	}
}

// IsMultiMAC은 컬렉션의 레코드가 여러 MAC을 보유하는지 확인합니다.
// 단일 MAC 컬렉션(장비)에서는 레코드를 유지한 채 MAC만 제거할 수 없습니다.
func (c Collection) IsMultiMAC() bool {
	return c != CollectionEquipment
}
