package main

import (
	"path/filepath"
	"time"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"
	"github.com/Vineet-Sharma1927/InkSight/internal/config"
	"github.com/Vineet-Sharma1927/InkSight/internal/database"
	logger "github.com/Vineet-Sharma1927/InkSight/internal/logging"
	"github.com/Vineet-Sharma1927/InkSight/internal/router"
	"github.com/Vineet-Sharma1927/InkSight/internal/services"
	"github.com/Vineet-Sharma1927/InkSight/internal/session"

	"go.uber.org/zap"
)

func main() {
	// A bootstrap logger covers config loading; the real logger needs the
	// config to know where its files go.
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		bootLog.Fatal("Failed to resolve project root", zap.Error(err))
	}

	if err := config.Init(projectRoot, bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(projectRoot, config.Conf.Logging)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Database
	database.Init(log)

	// Pick the response classifier. Reference mode loads local lookup
	// tables; remote mode talks to an external classification service.
	var an analyzer.Analyzer
	var tables func() []analyzer.TableInfo
	switch config.Conf.Analyzer.Mode {
	case "remote":
		an = analyzer.NewRemote(config.Conf.Analyzer.RemoteURL)
		log.Info("Using remote analyzer", zap.String("url", config.Conf.Analyzer.RemoteURL))
	default:
		ref, err := analyzer.LoadReference(filepath.Join(projectRoot, config.Conf.Analyzer.ReferencePath))
		if err != nil {
			log.Fatal("Failed to load reference tables", zap.Error(err))
		}
		an = ref
		tables = ref.TablesInfo
		log.Info("Using reference analyzer", zap.String("path", config.Conf.Analyzer.ReferencePath))
	}

	submitter := services.NewSubmissionService(log, an)

	ttl := time.Duration(config.Conf.Test.SessionTTLMinutes) * time.Minute
	manager := session.NewManager(log, an, submitter,
		config.Conf.Test.TotalImages, config.Conf.Test.GuardMessage, ttl)

	janitor := services.NewJanitor(log, manager, 5*time.Minute)
	janitor.Start()
	defer janitor.Stop()

	// Setup router, passing the logger to it
	r := router.Setup(log, manager, an, tables)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
