package api

import (
	"context"
	"encoding/json"
	"equiptrack/internal/application/usecases"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"
	"equiptrack/internal/domain/macaddr"
	"equiptrack/internal/domain/services"
	"equiptrack/internal/infrastructure/health"
	"equiptrack/internal/infrastructure/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// UseCases는 핸들러가 사용하는 유스케이스 묶음입니다
type UseCases struct {
	RegisterEquipment *usecases.RegisterEquipmentUseCase
	RegisterBox       *usecases.RegisterInventoryBoxUseCase
	RegisterDefect    *usecases.RegisterDefectReportUseCase
	RegisterRecovery  *usecases.RegisterRecoveryReportUseCase
	RegisterRMA       *usecases.RegisterRMAUseCase
	RecordProduction  *usecases.RecordProductionUseCase
	ResolveConflict   *usecases.ResolveConflictUseCase
	Dashboard         *usecases.DashboardUseCase
}

// Repositories는 조회 엔드포인트가 사용하는 저장소 묶음입니다
type Repositories struct {
	Equipment interfaces.EquipmentRepository
	Boxes     interfaces.InventoryBoxRepository
	Defects   interfaces.DefectReportRepository
	Recovery  interfaces.RecoveryReportRepository
	RMA       interfaces.RMARecordRepository
}

// Handler는 HTTP API의 요청 핸들러입니다
type Handler struct {
	usecases  UseCases
	repos     Repositories
	checker   *services.UniquenessChecker
	finder    *services.ConflictFinder
	presenter *Presenter
	health    *health.HealthService
	logger    *logrus.Logger
}

// NewHandler는 새로운 Handler를 생성합니다
func NewHandler(
	uc UseCases,
	repos Repositories,
	checker *services.UniquenessChecker,
	finder *services.ConflictFinder,
	presenter *Presenter,
	healthService *health.HealthService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		usecases:  uc,
		repos:     repos,
		checker:   checker,
		finder:    finder,
		presenter: presenter,
		health:    healthService,
		logger:    logger,
	}
}

// validateMACRequest는 MAC 목록 검증 요청입니다.
// MACText는 붙여넣기된 원문 텍스트 그대로입니다.
type validateMACRequest struct {
	MACText   string `json:"mac_text"`
	Context   string `json:"context"`
	ExcludeID int    `json:"exclude_id"`
}

// ValidateMAC은 POST /api/validate-mac을 처리합니다
func (h *Handler) ValidateMAC(w http.ResponseWriter, r *http.Request) {
	var req validateMACRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	started := time.Now()
	view := h.runValidation(r.Context(), req)
	h.recordValidation(view, time.Since(started))

	h.presenter.WriteJSON(w, http.StatusOK, view)
}

// runValidation은 원문 텍스트 분리와 목록 검증을 수행합니다
func (h *Handler) runValidation(ctx context.Context, req validateMACRequest) ValidationView {
	macs, invalid := macaddr.ParseBulk(req.MACText)
	callCtx := services.ParseCallContext(req.Context)

	result := h.checker.ValidateList(ctx, macs, callCtx, req.ExcludeID)
	for _, token := range invalid {
		result.Valid = false
		result.Errors = append(result.Errors, services.ValidationError{
			MAC:     token.Raw,
			Kind:    services.ErrorKindFormat,
			Message: "유효하지 않은 MAC 주소 형식: " + token.Raw,
		})
	}

	return h.presenter.PresentValidation(result)
}

// recordValidation은 검증 결과의 메트릭과 상태 통계를 기록합니다
func (h *Handler) recordValidation(view ValidationView, elapsed time.Duration) {
	h.health.IncrementValidations()

	outcome := "accepted"
	for _, e := range view.Errors {
		if e.Kind == string(services.ErrorKindIndeterminate) {
			outcome = "indeterminate"
			h.health.IncrementFailedLookups()
			break
		}
	}
	if outcome == "accepted" && !view.Valid {
		outcome = "rejected"
	}

	metrics.RecordValidation(outcome, elapsed.Seconds())
}

// Conflicts는 GET /api/conflicts를 처리합니다.
// 충돌별 제공 액션은 X-Role 헤더의 권한에 따라 달라집니다.
func (h *Handler) Conflicts(w http.ResponseWriter, r *http.Request) {
	mac := r.URL.Query().Get("mac")
	if mac == "" {
		h.presenter.WriteError(w, errors.NewValidationError("mac 파라미터가 필요함", nil))
		return
	}

	excludeID, _ := strconv.Atoi(r.URL.Query().Get("exclude_id"))

	set := h.finder.FindConflicts(r.Context(), mac, excludeID)
	if set.HasConflict() {
		h.health.IncrementConflictsFound()
		for _, c := range set.Conflicts {
			metrics.RecordConflict(string(c.Collection))
		}
	}

	elevated := r.Header.Get("X-Role") == string(usecases.RoleAdmin)
	h.presenter.WriteJSON(w, http.StatusOK, h.presenter.PresentConflicts(set.MAC, set, elevated))
}

// resolveConflictRequest는 충돌 해소 요청입니다
type resolveConflictRequest struct {
	Collection string `json:"collection"`
	RecordID   int    `json:"record_id"`
	MAC        string `json:"mac"`
	Action     string `json:"action"`
	Confirmed  bool   `json:"confirmed"`
}

// resolveConflictResponse는 충돌 해소 응답입니다.
// reference는 편집 액션에서만 포함됩니다.
type resolveConflictResponse struct {
	Resolved  bool                      `json:"resolved"`
	Message   string                    `json:"message"`
	Reference *usecases.RecordReference `json:"reference,omitempty"`
}

// ResolveConflict는 POST /api/conflicts/resolve를 처리합니다.
// 요청자 권한은 X-Role 헤더로 전달됩니다.
func (h *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	var req resolveConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	role := usecases.RoleUser
	if r.Header.Get("X-Role") == string(usecases.RoleAdmin) {
		role = usecases.RoleAdmin
	}

	output, err := h.usecases.ResolveConflict.Execute(r.Context(), usecases.ResolveConflictInput{
		Collection: req.Collection,
		RecordID:   req.RecordID,
		MAC:        req.MAC,
		Action:     usecases.ResolveAction(req.Action),
		Role:       role,
		Confirmed:  req.Confirmed,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.presenter.WriteJSON(w, http.StatusOK, resolveConflictResponse{
		Resolved:  output.Resolved,
		Message:   output.Message,
		Reference: output.Reference,
	})
}

// registerEquipmentRequest는 장비 등록/수정 요청입니다
type registerEquipmentRequest struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
	MAC   string `json:"mac"`
}

// RegisterEquipment는 POST /api/equipment를 처리합니다
func (h *Handler) RegisterEquipment(w http.ResponseWriter, r *http.Request) {
	var req registerEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	output, err := h.usecases.RegisterEquipment.Execute(r.Context(), usecases.RegisterEquipmentInput{
		ID:    req.ID,
		Name:  req.Name,
		Model: req.Model,
		MAC:   req.MAC,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.writeRegisterResponse(w, output.ID, output.Result)
}

// ListEquipment는 GET /api/equipment를 처리합니다
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.repos.Equipment.List(r.Context())
	if err != nil {
		h.presenter.WriteError(w, errors.NewSystemError("장비 목록 조회 실패", err))
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, items)
}

// GetEquipment는 GET /api/equipment/{id}를 처리합니다
func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}
	item, err := h.repos.Equipment.GetByID(r.Context(), id)
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, item)
}

// registerBoxRequest는 재고 박스 등록/수정 요청입니다
type registerBoxRequest struct {
	ID            int    `json:"id"`
	BoxNumber     string `json:"box_number"`
	EquipmentName string `json:"equipment_name"`
	Model         string `json:"model"`
	MACText       string `json:"mac_text"`
}

// RegisterBox는 POST /api/boxes를 처리합니다
func (h *Handler) RegisterBox(w http.ResponseWriter, r *http.Request) {
	var req registerBoxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	output, err := h.usecases.RegisterBox.Execute(r.Context(), usecases.RegisterInventoryBoxInput{
		ID:            req.ID,
		BoxNumber:     req.BoxNumber,
		EquipmentName: req.EquipmentName,
		Model:         req.Model,
		MACText:       req.MACText,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.writeRegisterResponse(w, output.ID, output.Result)
}

// ListBoxes는 GET /api/boxes를 처리합니다
func (h *Handler) ListBoxes(w http.ResponseWriter, r *http.Request) {
	items, err := h.repos.Boxes.List(r.Context())
	if err != nil {
		h.presenter.WriteError(w, errors.NewSystemError("재고 박스 목록 조회 실패", err))
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, items)
}

// registerDefectRequest는 불량 리포트 등록/수정 요청입니다
type registerDefectRequest struct {
	ID        int    `json:"id"`
	Equipment string `json:"equipment"`
	Model     string `json:"model"`
	Quantity  int    `json:"quantity"`
	MACText   string `json:"mac_text"`
}

// RegisterDefect는 POST /api/defects를 처리합니다
func (h *Handler) RegisterDefect(w http.ResponseWriter, r *http.Request) {
	var req registerDefectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	output, err := h.usecases.RegisterDefect.Execute(r.Context(), usecases.RegisterDefectReportInput{
		ID:        req.ID,
		Equipment: req.Equipment,
		Model:     req.Model,
		Quantity:  req.Quantity,
		MACText:   req.MACText,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.writeRegisterResponse(w, output.ID, output.Result)
}

// ListDefects는 GET /api/defects를 처리합니다
func (h *Handler) ListDefects(w http.ResponseWriter, r *http.Request) {
	items, err := h.repos.Defects.List(r.Context())
	if err != nil {
		h.presenter.WriteError(w, errors.NewSystemError("불량 리포트 목록 조회 실패", err))
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, items)
}

// registerRecoveryRequest는 복구 리포트 등록/수정 요청입니다
type registerRecoveryRequest struct {
	ID          int    `json:"id"`
	Equipment   string `json:"equipment"`
	Problem     string `json:"problem"`
	Solution    string `json:"solution"`
	Responsible string `json:"responsible"`
	MACText     string `json:"mac_text"`
}

// RegisterRecovery는 POST /api/recoveries를 처리합니다
func (h *Handler) RegisterRecovery(w http.ResponseWriter, r *http.Request) {
	var req registerRecoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	output, err := h.usecases.RegisterRecovery.Execute(r.Context(), usecases.RegisterRecoveryReportInput{
		ID:          req.ID,
		Equipment:   req.Equipment,
		Problem:     req.Problem,
		Solution:    req.Solution,
		Responsible: req.Responsible,
		MACText:     req.MACText,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.writeRegisterResponse(w, output.ID, output.Result)
}

// ListRecoveries는 GET /api/recoveries를 처리합니다
func (h *Handler) ListRecoveries(w http.ResponseWriter, r *http.Request) {
	items, err := h.repos.Recovery.List(r.Context())
	if err != nil {
		h.presenter.WriteError(w, errors.NewSystemError("복구 리포트 목록 조회 실패", err))
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, items)
}

// registerRMARequest는 RMA 레코드 등록/수정 요청입니다
type registerRMARequest struct {
	ID        int    `json:"id"`
	RMANumber string `json:"rma_number"`
	Equipment string `json:"equipment"`
	Model     string `json:"model"`
	MACText   string `json:"mac_text"`
}

// RegisterRMA는 POST /api/rma를 처리합니다
func (h *Handler) RegisterRMA(w http.ResponseWriter, r *http.Request) {
	var req registerRMARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	output, err := h.usecases.RegisterRMA.Execute(r.Context(), usecases.RegisterRMAInput{
		ID:        req.ID,
		RMANumber: req.RMANumber,
		Equipment: req.Equipment,
		Model:     req.Model,
		MACText:   req.MACText,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.writeRegisterResponse(w, output.ID, output.Result)
}

// ListRMA는 GET /api/rma를 처리합니다
func (h *Handler) ListRMA(w http.ResponseWriter, r *http.Request) {
	items, err := h.repos.RMA.List(r.Context())
	if err != nil {
		h.presenter.WriteError(w, errors.NewSystemError("RMA 목록 조회 실패", err))
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, items)
}

// recordProductionRequest는 생산 실적 기록 요청입니다
type recordProductionRequest struct {
	Employee    string `json:"employee"`
	ShiftDate   string `json:"shift_date"`
	Quantity    string `json:"quantity"`
	HoursWorked string `json:"hours_worked"`
}

// RecordProduction은 POST /api/production을 처리합니다
func (h *Handler) RecordProduction(w http.ResponseWriter, r *http.Request) {
	var req recordProductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.presenter.WriteError(w, errors.NewValidationError("요청 본문을 해석할 수 없음", err))
		return
	}

	output, err := h.usecases.RecordProduction.Execute(r.Context(), usecases.RecordProductionInput{
		Employee:    req.Employee,
		ShiftDate:   req.ShiftDate,
		Quantity:    req.Quantity,
		HoursWorked: req.HoursWorked,
	})
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}

	h.presenter.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"id":            output.ID,
		"rate_per_hour": output.RatePerHour.String(),
	})
}

// Dashboard는 GET /api/dashboard를 처리합니다
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	output, err := h.usecases.Dashboard.Execute(r.Context())
	if err != nil {
		h.presenter.WriteError(w, err)
		return
	}
	h.presenter.WriteJSON(w, http.StatusOK, output)
}

// registerResponse는 등록 엔드포인트의 공통 응답입니다
type registerResponse struct {
	ID         int            `json:"id,omitempty"`
	Validation ValidationView `json:"validation"`
}

// writeRegisterResponse는 검증 결과에 따라 201 또는 422를 반환합니다
func (h *Handler) writeRegisterResponse(w http.ResponseWriter, id int, result services.ValidationResult) {
	view := h.presenter.PresentValidation(result)
	status := http.StatusCreated
	if !view.Valid {
		status = http.StatusUnprocessableEntity
	}
	h.presenter.WriteJSON(w, status, registerResponse{ID: id, Validation: view})
}

// pathID는 경로의 {id} 값을 해석합니다
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("올바르지 않은 레코드 ID", err)
	}
	return id, nil
}
