package api

import (
	"encoding/json"
	"equiptrack/internal/application/usecases"
	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/services"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Presenter는 도메인 결과를 사용자 응답으로 변환합니다.
// 조회 실패(indeterminate)의 내부 원인은 사용자에게 노출하지 않습니다.
type Presenter struct {
	logger *logrus.Logger
}

// NewPresenter는 새로운 Presenter를 생성합니다
func NewPresenter(logger *logrus.Logger) *Presenter {
	return &Presenter{logger: logger}
}

// ValidationErrorView는 검증 문제 하나의 사용자 표현입니다
type ValidationErrorView struct {
	MAC     string `json:"mac"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationView는 목록 검증 결과의 사용자 표현입니다
type ValidationView struct {
	Valid  bool                  `json:"valid"`
	Errors []ValidationErrorView `json:"errors,omitempty"`
}

// ConflictView는 충돌 레코드 하나의 사용자 표현입니다.
// Actions는 요청자의 권한과 컬렉션 특성에 따라 제공되는 해소 액션입니다.
type ConflictView struct {
	RecordID int      `json:"record_id"`
	Display  string   `json:"display"`
	MAC      string   `json:"mac"`
	Actions  []string `json:"actions"`
}

// CollectionConflictsView는 한 컬렉션에서 발견된 충돌 그룹입니다
type CollectionConflictsView struct {
	Collection     string         `json:"collection"`
	CollectionName string         `json:"collection_name"`
	Conflicts      []ConflictView `json:"conflicts"`
}

// ConflictSetView는 충돌 조회 결과의 사용자 표현입니다.
// 충돌은 발견된 컬렉션별로 고정된 순서로 그룹화됩니다.
type ConflictSetView struct {
	MAC         string                    `json:"mac"`
	HasConflict bool                      `json:"has_conflict"`
	Collections []CollectionConflictsView `json:"collections"`
}

// PresentValidation은 검증 결과를 사용자 표현으로 변환합니다.
// 조회 실패 항목은 내부 에러 대신 일반 안내 문구로 바뀝니다.
func (p *Presenter) PresentValidation(result services.ValidationResult) ValidationView {
	view := ValidationView{Valid: result.Valid}
	for _, e := range result.Errors {
		message := e.Message
		if e.Kind == services.ErrorKindIndeterminate {
			message = "검증을 완료할 수 없습니다. 잠시 후 다시 시도해 주세요"
		}
		view.Errors = append(view.Errors, ValidationErrorView{
			MAC:     e.MAC,
			Kind:    string(e.Kind),
			Message: message,
		})
	}
	return view
}

// PresentConflicts는 충돌 집합을 컬렉션별로 그룹화한 사용자 표현으로
// 변환합니다. elevated는 요청자가 관리자 권한인지 나타냅니다.
func (p *Presenter) PresentConflicts(mac string, set *services.ConflictSet, elevated bool) ConflictSetView {
	view := ConflictSetView{
		MAC:         mac,
		HasConflict: set.HasConflict(),
		Collections: []CollectionConflictsView{},
	}

	grouped := set.ByCollection()
	for _, collection := range entities.AllCollections {
		conflicts, ok := grouped[collection]
		if !ok {
			continue
		}

		group := CollectionConflictsView{
			Collection:     string(collection),
			CollectionName: collection.DisplayName(),
		}
		for _, c := range conflicts {
			group.Conflicts = append(group.Conflicts, ConflictView{
				RecordID: c.RecordID,
				Display:  c.Display,
				MAC:      c.MAC,
				Actions:  availableActions(collection, elevated),
			})
		}
		view.Collections = append(view.Collections, group)
	}

	return view
}

// availableActions는 컬렉션과 권한에 따라 제공 가능한 해소 액션을
// 반환합니다. MAC 제거는 여러 MAC을 보유하는 컬렉션에서만 가능하고,
// 편집과 삭제는 관리자 전용입니다. 장비 충돌은 일반 사용자에게는
// 안내용 표시만 됩니다.
func availableActions(collection entities.Collection, elevated bool) []string {
	actions := []string{}
	if collection.IsMultiMAC() {
		actions = append(actions, string(usecases.ActionRemoveMAC))
	}
	if elevated {
		actions = append(actions, string(usecases.ActionEdit), string(usecases.ActionDeleteRecord))
	}
	return actions
}

// errorBody는 에러 응답의 공통 형태입니다
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON은 JSON 응답을 기록합니다
func (p *Presenter) WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		p.logger.WithError(err).Error("응답 인코딩 실패")
	}
}

// WriteError는 도메인 에러를 HTTP 상태 코드와 안내 문구로 변환합니다
func (p *Presenter) WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsValidationError(err):
		p.WriteJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.IsNotFoundError(err):
		p.WriteJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.IsConflictError(err):
		p.WriteJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.IsIndeterminateError(err):
		// 내부 원인은 로그에만 남깁니다
		p.logger.WithError(err).Error("검증을 완료할 수 없음")
		p.WriteJSON(w, http.StatusServiceUnavailable,
			errorBody{Error: "검증을 완료할 수 없습니다. 잠시 후 다시 시도해 주세요"})
	default:
		p.logger.WithError(err).Error("내부 오류")
		p.WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "내부 오류가 발생했습니다"})
	}
}
