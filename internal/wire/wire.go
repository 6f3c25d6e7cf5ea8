package wire

import (
	"Keystone/internal/api"
	"Keystone/internal/api/config"
	"Keystone/internal/api/handler"
	"Keystone/internal/job"
	"Keystone/internal/model"
	"Keystone/internal/pkg/bank"
	"Keystone/internal/pkg/cron"
	"Keystone/internal/pkg/kafka"
	"Keystone/internal/pkg/mongo"
	"Keystone/internal/repository"
	"Keystone/internal/service"
	"context"
	"errors"
	log "log/slog"
	"sort"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	Ledger        *repository.Ledger
	CronMgr       *cron.Manager
	KafkaManager  *kafka.ConsumerManager // 未启用 Kafka 时为空
	LedgerEmitter *kafka.LedgerProducer
}

// Close 刷出尚未发送的账本事件
func (a *ApplicationContainer) Close() {
	if a.LedgerEmitter != nil {
		if err := a.LedgerEmitter.Close(); err != nil {
			log.Error("close ledger producer failed", "err", err)
		}
	}
}

// BuildApplication db 在未启用日志且使用内存银行时可为空，mongoDB 仅在启用 Kafka 时需要
func BuildApplication(ctx context.Context, db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	ledger, journalRepo, err := buildLedger(ctx, db, cfg)
	if err != nil {
		return nil, err
	}

	b, err := buildBank(ctx, db, cfg.Bank)
	if err != nil {
		return nil, err
	}

	notificationService := service.NewNotificationService(ledger)
	profileService := service.NewProfileService(ledger)
	userFollowService := service.NewUserFollowService(ledger, notificationService)
	postService := service.NewPostService(ledger, notificationService)
	postActionService := service.NewPostActionService(ledger, notificationService)
	tipService := service.NewTipService(ledger, b, notificationService, cfg.Ledger.DisplayDecimals)
	adminService := service.NewAdminService(ledger)

	handlers := &api.HandlersGroup{
		AuthHandler:         handler.NewAuthHandler(),
		ProfileHandler:      handler.NewProfileHandler(profileService),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowService),
		PostHandler:         handler.NewPostHandler(postService),
		PostActionHandler:   handler.NewPostActionHandler(postActionService),
		TipHandler:          handler.NewTipHandler(tipService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		AdminHandler:        handler.NewAdminHandler(adminService),
		WSHandler:           handler.NewWsHandler(profileService),
		AdminService:        adminService,
	}

	app := &ApplicationContainer{
		Router: api.SetupRouter(handlers),
		Ledger: ledger,
	}

	var verifier job.ChainVerifier
	if journalRepo != nil {
		verifier = journalRepo
	}
	app.CronMgr = cron.NewCronManager(job.NewLedgerAuditJob(ledger, b, verifier), cfg.Cron.LedgerAudit)

	if cfg.Kafka.Enable {
		if mongoDB == nil {
			return nil, errors.New("kafka projections require a mongo database")
		}
		app.LedgerEmitter, err = kafka.NewLedgerProducer(cfg)
		if err != nil {
			return nil, err
		}
		ledger.AddCommitHook(app.LedgerEmitter)

		sysBoxRepo := mongo.NewSysBoxRepo(mongoDB)
		if err = sysBoxRepo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		app.KafkaManager, err = kafka.NewConsumerManager(cfg, sysBoxRepo)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

func initialSettings(cfg config.LedgerConfig) model.Settings {
	return model.Settings{
		FeeRate:          cfg.FeeRate,
		MinTip:           cfg.MinTip,
		MaxContentLength: cfg.MaxContentLength,
		FeeCollector:     cfg.Deployer,
		Escrow:           cfg.Escrow,
	}
}

// buildLedger 启用日志时从库中恢复账本，库中已有的 settings 优先于配置
func buildLedger(ctx context.Context, db *gorm.DB, cfg *config.Config) (*repository.Ledger, repository.JournalRepo, error) {
	settings := initialSettings(cfg.Ledger)
	if !cfg.Ledger.Journal {
		log.Warn("Ledger journal disabled, state is kept in memory only")
		return repository.NewLedger(settings), nil, nil
	}
	if db == nil {
		return nil, nil, errors.New("ledger journal requires a database")
	}

	journalRepo := repository.NewJournalRepo(db)
	if err := journalRepo.Migrate(ctx); err != nil {
		return nil, nil, err
	}
	snapshot, err := journalRepo.LoadSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	ledger := repository.NewLedger(settings, repository.WithJournal(journalRepo))
	ledger.Restore(snapshot)
	return ledger, journalRepo, nil
}

// buildBank 创世余额只在账户余额为 0 时注入，重启不会重复入账
func buildBank(ctx context.Context, db *gorm.DB, cfg config.BankConfig) (bank.Bank, error) {
	var b bank.Bank
	switch cfg.Driver {
	case "memory":
		b = bank.NewMemoryBank()
	case "mysql":
		if db == nil {
			return nil, errors.New("mysql bank requires a database")
		}
		mysqlBank := bank.NewMySQLBank(db)
		if err := mysqlBank.Migrate(ctx); err != nil {
			return nil, err
		}
		b = mysqlBank
	default:
		return nil, errors.New("unknown bank driver: " + cfg.Driver)
	}

	principals := make([]string, 0, len(cfg.Genesis))
	for p := range cfg.Genesis {
		principals = append(principals, p)
	}
	sort.Strings(principals)
	for _, p := range principals {
		balance, err := b.Balance(ctx, p)
		if err != nil {
			return nil, err
		}
		if balance > 0 {
			continue
		}
		if err = b.Credit(ctx, p, cfg.Genesis[p]); err != nil {
			return nil, err
		}
		log.Info("Genesis balance credited", "principal", p, "amount", cfg.Genesis[p])
	}
	return b, nil
}
