package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equiptrack/internal/infrastructure/config"
	"equiptrack/internal/infrastructure/container"
	"equiptrack/internal/infrastructure/metrics"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const version = "0.3.0"

func main() {
	// 로거 초기화
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// LOG_LEVEL 환경 변수 설정
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// .env 파일은 있을 때만 로드
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("Failed to load .env file")
	}

	// 설정 로드
	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// 의존성 주입 컨테이너 생성
	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create dependency injection container")
	}
	defer func() {
		if err := appContainer.Close(); err != nil {
			logger.WithError(err).Error("Failed to cleanup container")
		}
	}()

	// 애플리케이션 시작
	app := NewApplication(appContainer, logger)
	if err := app.Run(); err != nil && err != context.Canceled {
		logger.WithError(err).Fatal("Failed to run application")
	}
}

// Application은 메인 애플리케이션 구조체입니다
type Application struct {
	container    *container.Container
	logger       *logrus.Logger
	healthServer *http.Server
	apiServer    *http.Server
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(container *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container: container,
		logger:    logger,
	}
}

// Run은 애플리케이션을 실행합니다
func (a *Application) Run() error {
	cfg := a.container.GetConfig()

	// 서비스 정보 메트릭 설정
	hostname, _ := os.Hostname()
	metrics.SetServiceInfo(version, hostname)
	metrics.SetDBConnectionStatus(true)
	a.container.GetHealthService().UpdateDBHealth(true, nil)

	// 헬스체크 서버 시작
	if err := a.startHealthServer(cfg.Health.Port); err != nil {
		return err
	}

	// API 서버 시작
	if err := a.startAPIServer(cfg.Server.Port); err != nil {
		return err
	}

	// 컨텍스트 및 시그널 핸들링 설정
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("EquipTrack server started")

	// 시그널 처리를 위한 goroutine
	go func() {
		<-sigChan
		a.logger.Info("Received shutdown signal")
		cancel()
	}()

	// DB 상태 감시 goroutine
	go a.watchDBHealth(ctx)

	// 리포트 스케줄러 실행 (설정으로 비활성화 가능)
	if scheduler := a.container.GetReportScheduler(); scheduler != nil {
		err := scheduler.Run(ctx)
		a.shutdown()
		return err
	}

	<-ctx.Done()
	a.shutdown()
	return ctx.Err()
}

// startHealthServer는 헬스체크 서버를 시작합니다
func (a *Application) startHealthServer(port string) error {
	healthService := a.container.GetHealthService()

	// HTTP 핸들러 설정
	mux := http.NewServeMux()
	mux.Handle("/healthz", healthService)
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()

	return nil
}

// startAPIServer는 API 서버를 시작합니다
func (a *Application) startAPIServer(port string) error {
	a.apiServer = &http.Server{
		Addr:    ":" + port,
		Handler: a.container.GetAPIHandler(),
	}

	go func() {
		a.logger.WithField("port", port).Info("API server started")
		if err := a.apiServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("API server failed")
		}
	}()

	return nil
}

// watchDBHealth는 데이터베이스 연결 상태를 주기적으로 확인합니다
func (a *Application) watchDBHealth(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := a.container.GetDB().PingContext(ctx)
			healthy := err == nil
			a.container.GetHealthService().UpdateDBHealth(healthy, err)
			metrics.SetDBConnectionStatus(healthy)
			if err != nil {
				a.logger.WithError(err).Error("Database health check failed")
			}
		}
	}
}

// shutdown은 애플리케이션을 정리하고 종료합니다
func (a *Application) shutdown() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if a.apiServer != nil {
		if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Error("Failed to shutdown API server")
		}
	}
	if a.healthServer != nil {
		if err := a.healthServer.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Error("Failed to shutdown health check server")
		}
	}
}
