package container

import (
	"database/sql"
	"equiptrack/internal/application/scheduling"
	"equiptrack/internal/application/usecases"
	"equiptrack/internal/domain/interfaces"
	"equiptrack/internal/domain/services"
	"equiptrack/internal/infrastructure/adapters"
	"equiptrack/internal/infrastructure/api"
	"equiptrack/internal/infrastructure/config"
	"equiptrack/internal/infrastructure/health"
	"equiptrack/internal/infrastructure/persistence"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// 인프라스트럭처 어댑터들
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock

	// 서비스들
	healthService     *health.HealthService
	conflictFinder    *services.ConflictFinder
	uniquenessChecker *services.UniquenessChecker

	// 레포지토리
	equipmentRepo  interfaces.EquipmentRepository
	boxRepo        interfaces.InventoryBoxRepository
	defectRepo     interfaces.DefectReportRepository
	recoveryRepo   interfaces.RecoveryReportRepository
	rmaRepo        interfaces.RMARecordRepository
	productionRepo interfaces.ProductionRepository
	reportState    interfaces.ReportStateStore

	// 유스케이스
	useCases        api.UseCases
	generateReport  *usecases.GenerateDailyReportUseCase
	reportScheduler *scheduling.ReportScheduler

	// HTTP
	apiHandler http.Handler

	// 데이터베이스
	db *sql.DB
}

// NewContainer는 새로운 Container를 생성합니다
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initializeInfrastructure(); err != nil {
		return nil, err
	}

	if err := container.initializeServices(); err != nil {
		return nil, err
	}

	if err := container.initializeUseCases(); err != nil {
		return nil, err
	}

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure() error {
	// 기본 어댑터들 초기화
	c.fileSystem = adapters.NewRealFileSystem()
	c.clock = adapters.NewRealClock()

	// 데이터베이스 연결
	dsn := c.buildDSN()
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}

	// 연결 풀 설정
	db.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.config.Database.MaxLifetime)

	// 연결 테스트
	if err := db.Ping(); err != nil {
		return err
	}

	c.db = db

	// 레포지토리 초기화
	c.equipmentRepo = persistence.NewMySQLEquipmentRepository(c.db, c.logger)
	c.boxRepo = persistence.NewMySQLInventoryBoxRepository(c.db, c.logger)
	c.defectRepo = persistence.NewMySQLDefectReportRepository(c.db, c.logger)
	c.recoveryRepo = persistence.NewMySQLRecoveryReportRepository(c.db, c.logger)
	c.rmaRepo = persistence.NewMySQLRMARecordRepository(c.db, c.logger)
	c.productionRepo = persistence.NewMySQLProductionRepository(c.db, c.logger)

	// 리포트 상태 저장소 (로컬 SQLite)
	if c.config.Report.Enabled {
		state, err := persistence.NewSQLiteReportStateStore(c.config.Report.StateDBPath, c.fileSystem, c.logger)
		if err != nil {
			return err
		}
		c.reportState = state
	}

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() error {
	// 헬스 서비스
	c.healthService = health.NewHealthService(c.clock, c.logger)

	// 충돌 탐색과 유일성 검사 서비스
	c.conflictFinder = services.NewConflictFinder(
		c.equipmentRepo,
		c.boxRepo,
		c.defectRepo,
		c.recoveryRepo,
		c.rmaRepo,
		c.config.Validation.IncludeRMA,
		c.logger,
	)
	c.uniquenessChecker = services.NewUniquenessChecker(c.conflictFinder, c.logger)

	return nil
}

// initializeUseCases는 유스케이스들과 HTTP 핸들러를 초기화합니다
func (c *Container) initializeUseCases() error {
	c.useCases = api.UseCases{
		RegisterEquipment: usecases.NewRegisterEquipmentUseCase(c.equipmentRepo, c.uniquenessChecker, c.logger),
		RegisterBox:       usecases.NewRegisterInventoryBoxUseCase(c.boxRepo, c.uniquenessChecker, c.logger),
		RegisterDefect:    usecases.NewRegisterDefectReportUseCase(c.defectRepo, c.uniquenessChecker, c.logger),
		RegisterRecovery:  usecases.NewRegisterRecoveryReportUseCase(c.recoveryRepo, c.uniquenessChecker, c.logger),
		RegisterRMA:       usecases.NewRegisterRMAUseCase(c.rmaRepo, c.uniquenessChecker, c.logger),
		RecordProduction:  usecases.NewRecordProductionUseCase(c.productionRepo, c.clock, c.logger),
		ResolveConflict: usecases.NewResolveConflictUseCase(
			c.equipmentRepo,
			c.boxRepo,
			c.defectRepo,
			c.recoveryRepo,
			c.rmaRepo,
			c.logger,
		),
		Dashboard: usecases.NewDashboardUseCase(
			c.equipmentRepo,
			c.boxRepo,
			c.defectRepo,
			c.recoveryRepo,
			c.rmaRepo,
			c.productionRepo,
			c.logger,
		),
	}

	// 일일 리포트 (설정으로 비활성화 가능)
	if c.config.Report.Enabled {
		c.generateReport = usecases.NewGenerateDailyReportUseCase(
			c.defectRepo,
			c.recoveryRepo,
			c.productionRepo,
			c.reportState,
			c.fileSystem,
			c.clock,
			c.config.Report.OutputDir,
			c.config.Report.GenerateAfter,
			c.logger,
		)
		c.reportScheduler = scheduling.NewReportScheduler(
			c.generateReport,
			c.config.Report.CheckInterval,
			c.healthService.SetLastReportDate,
			c.logger,
		)
	}

	// HTTP 핸들러
	presenter := api.NewPresenter(c.logger)
	repos := api.Repositories{
		Equipment: c.equipmentRepo,
		Boxes:     c.boxRepo,
		Defects:   c.defectRepo,
		Recovery:  c.recoveryRepo,
		RMA:       c.rmaRepo,
	}
	handler := api.NewHandler(c.useCases, repos, c.uniquenessChecker, c.conflictFinder, presenter, c.healthService, c.logger)
	c.apiHandler = api.NewRouter(handler, c.logger)

	return nil
}

// buildDSN은 데이터베이스 연결 문자열을 생성합니다
func (c *Container) buildDSN() string {
	cfg := c.config.Database
	return cfg.User + ":" + cfg.Password + "@tcp(" + cfg.Host + ":" + cfg.Port + ")/" + cfg.Database + "?parseTime=true"
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetHealthService는 헬스 서비스를 반환합니다
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetAPIHandler는 API HTTP 핸들러를 반환합니다
func (c *Container) GetAPIHandler() http.Handler {
	return c.apiHandler
}

// GetReportScheduler는 리포트 스케줄러를 반환합니다 (비활성화 시 nil)
func (c *Container) GetReportScheduler() *scheduling.ReportScheduler {
	return c.reportScheduler
}

// GetDB는 데이터베이스 연결을 반환합니다
func (c *Container) GetDB() *sql.DB {
	return c.db
}

// Close는 컨테이너를 정리합니다
func (c *Container) Close() error {
	if c.reportState != nil {
		if err := c.reportState.Close(); err != nil {
			c.logger.WithError(err).Warn("리포트 상태 저장소 닫기 실패")
		}
	}
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
