package usecases

import (
	"context"
	"equiptrack/internal/domain/constants"
	"equiptrack/internal/domain/entities"
	"equiptrack/internal/domain/errors"
	"equiptrack/internal/domain/interfaces"
	"equiptrack/internal/infrastructure/metrics"
	"equiptrack/pkg/utils"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// GenerateDailyReportUseCase는 일일 XLSX 리포트 생성을 처리하는 유스케이스입니다.
// 같은 날짜에 대해 여러 번 호출되어도 리포트는 한 번만 생성됩니다.
type GenerateDailyReportUseCase struct {
	defectRepo     interfaces.DefectReportRepository
	recoveryRepo   interfaces.RecoveryReportRepository
	productionRepo interfaces.ProductionRepository
	stateStore     interfaces.ReportStateStore
	fileSystem     interfaces.FileSystem
	clock          interfaces.Clock
	outputDir      string
	generateAfter  int // 리포트 생성이 허용되는 시각 (시)
	logger         *logrus.Logger
}

// NewGenerateDailyReportUseCase는 새로운 GenerateDailyReportUseCase를 생성합니다
func NewGenerateDailyReportUseCase(
	defectRepo interfaces.DefectReportRepository,
	recoveryRepo interfaces.RecoveryReportRepository,
	productionRepo interfaces.ProductionRepository,
	stateStore interfaces.ReportStateStore,
	fileSystem interfaces.FileSystem,
	clock interfaces.Clock,
	outputDir string,
	generateAfter int,
	logger *logrus.Logger,
) *GenerateDailyReportUseCase {
	return &GenerateDailyReportUseCase{
		defectRepo:     defectRepo,
		recoveryRepo:   recoveryRepo,
		productionRepo: productionRepo,
		stateStore:     stateStore,
		fileSystem:     fileSystem,
		clock:          clock,
		outputDir:      outputDir,
		generateAfter:  generateAfter,
		logger:         logger,
	}
}

// GenerateDailyReportOutput은 유스케이스의 출력 결과입니다
type GenerateDailyReportOutput struct {
	Generated bool
	Path      string
	Date      string
}

// Execute는 일일 리포트 생성 유스케이스를 실행합니다.
// 설정된 시각 이전이거나 오늘 리포트가 이미 생성된 경우 건너뜁니다.
func (uc *GenerateDailyReportUseCase) Execute(ctx context.Context) (*GenerateDailyReportOutput, error) {
	now := uc.clock.Now()
	if now.Hour() < uc.generateAfter {
		return &GenerateDailyReportOutput{Generated: false}, nil
	}

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateStr := date.Format(constants.ReportDateFormat)

	done, err := uc.stateStore.WasGenerated(ctx, date)
	if err != nil {
		return nil, errors.NewSystemError("리포트 생성 상태 조회 실패", err)
	}
	if done {
		uc.logger.WithField("date", dateStr).Debug("오늘 리포트가 이미 생성됨")
		return &GenerateDailyReportOutput{Generated: false, Date: dateStr}, nil
	}

	started := time.Now()

	defects, recoveries, production, err := uc.loadDailyData(ctx, date)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(uc.outputDir, fmt.Sprintf("equiptrack-%s.xlsx", dateStr))
	if err := uc.fileSystem.MkdirAll(uc.outputDir, 0755); err != nil {
		return nil, errors.NewSystemError("리포트 출력 디렉토리 생성 실패", err)
	}

	if err := uc.writeWorkbook(path, defects, recoveries, production); err != nil {
		return nil, errors.NewSystemError("리포트 파일 작성 실패", err)
	}

	if err := uc.stateStore.MarkGenerated(ctx, date, path); err != nil {
		return nil, errors.NewSystemError("리포트 생성 기록 실패", err)
	}

	metrics.RecordReportGeneration(time.Since(started).Seconds())
	uc.logger.WithFields(logrus.Fields{
		"date":       dateStr,
		"path":       path,
		"defects":    len(defects),
		"recoveries": len(recoveries),
		"production": len(production),
	}).Info("일일 리포트 생성 완료")

	return &GenerateDailyReportOutput{Generated: true, Path: path, Date: dateStr}, nil
}

// loadDailyData는 리포트 대상 데이터를 조회합니다.
// 일시적 DB 오류에 대비해 조회마다 재시도합니다.
func (uc *GenerateDailyReportUseCase) loadDailyData(ctx context.Context, date time.Time) (
	[]entities.DefectReport, []entities.RecoveryReport, []entities.ProductionEntry, error,
) {
	var (
		defects    []entities.DefectReport
		recoveries []entities.RecoveryReport
		production []entities.ProductionEntry
	)

	retryCfg := utils.DefaultRetryConfig

	err := utils.RetryWithBackoff(ctx, retryCfg, func() error {
		var err error
		defects, err = uc.defectRepo.ListByDate(ctx, date)
		return err
	})
	if err != nil {
		return nil, nil, nil, errors.NewSystemError("불량 리포트 조회 실패", err)
	}

	err = utils.RetryWithBackoff(ctx, retryCfg, func() error {
		var err error
		recoveries, err = uc.recoveryRepo.ListByDate(ctx, date)
		return err
	})
	if err != nil {
		return nil, nil, nil, errors.NewSystemError("복구 리포트 조회 실패", err)
	}

	err = utils.RetryWithBackoff(ctx, retryCfg, func() error {
		var err error
		production, err = uc.productionRepo.ListByDate(ctx, date)
		return err
	})
	if err != nil {
		return nil, nil, nil, errors.NewSystemError("생산 실적 조회 실패", err)
	}

	return defects, recoveries, production, nil
}

// writeWorkbook은 세 개의 시트로 구성된 XLSX 파일을 생성합니다
func (uc *GenerateDailyReportUseCase) writeWorkbook(
	path string,
	defects []entities.DefectReport,
	recoveries []entities.RecoveryReport,
	production []entities.ProductionEntry,
) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			uc.logger.WithError(err).Warn("리포트 워크북 닫기 실패")
		}
	}()

	const defectSheet = "불량"
	if err := f.SetSheetName("Sheet1", defectSheet); err != nil {
		return err
	}
	writeRow(f, defectSheet, 1, "장비", "모델", "수량", "MAC 주소")
	for i, d := range defects {
		writeRow(f, defectSheet, i+2, d.Equipment, d.Model, d.Quantity, strings.Join(d.MACs, ", "))
	}

	const recoverySheet = "복구"
	if _, err := f.NewSheet(recoverySheet); err != nil {
		return err
	}
	writeRow(f, recoverySheet, 1, "장비", "문제", "해결", "담당자", "MAC 주소")
	for i, r := range recoveries {
		writeRow(f, recoverySheet, i+2, r.Equipment, r.Problem, r.Solution, r.Responsible, strings.Join(r.MACs, ", "))
	}

	const productionSheet = "생산 실적"
	if _, err := f.NewSheet(productionSheet); err != nil {
		return err
	}
	writeRow(f, productionSheet, 1, "작업자", "생산 수량", "근무 시간", "시간당 생산량")
	for i, p := range production {
		writeRow(f, productionSheet, i+2, p.Employee, p.Quantity.String(), p.HoursWorked.String(), p.RatePerHour().String())
	}

	return f.SaveAs(path)
}

// writeRow는 시트의 한 행에 값들을 순서대로 기록합니다
func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		// SetCellValue는 존재하는 시트에서 실패하지 않습니다
		_ = f.SetCellValue(sheet, cell, v)
	}
}
