package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/config"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/handler"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/notify"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/repo"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/router"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/service"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/logger"
)

func main() {
	// 설정/로거 초기화
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.New()
	ctx := context.Background()

	// 이력 저장소: DATABASE_URL 이 있으면 Postgres, 없으면 메모리
	runRepo := repo.NewRunRepoInMemory()
	if cfg.DatabaseURL != "" {
		pool, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repo.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		runRepo = repo.NewRunRepoPostgres(pool)
	}
	runRepo, err = repo.NewCachedRunRepo(runRepo, cfg.RunCacheSize)
	if err != nil {
		log.Fatal(err)
	}

	notifier := notify.Nop()
	if cfg.MQTTBroker != "" {
		notifier, err = notify.NewMQTT(cfg.MQTTBroker, cfg.MQTTTopic, cfg.MQTTClientID)
		if err != nil {
			log.Fatal(err)
		}
	}
	defer notifier.Close()

	// 의존성 생성
	// HTTP 로는 HUFF_ROOT 아래 파일만 다룸
	codecSvc, err := service.NewCodecService(runRepo, notifier, logg, cfg.Alphabet).WithRoot(cfg.Root)
	if err != nil {
		log.Fatal(err)
	}
	codecH := handler.NewCodecHandler(codecSvc)

	// Gin 라우터 생성 및 라우팅 구성
	r := gin.Default()
	router.Register(r, router.Dependencies{
		CodecHandler: codecH,
	})

	addr := ":" + cfg.Port
	logg.Infof("starting server at %s (alphabet %s, root %s)", addr, cfg.Alphabet, codecSvc.Root())
	if err := r.Run(addr); err != nil {
		logg.Errorf("server: %v", err)
	}
}
