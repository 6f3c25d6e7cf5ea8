package cron

import (
	"Keystone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	ledgerAuditJob *job.LedgerAuditJob
	auditSpec      string
}

func NewCronManager(ledgerAuditJob *job.LedgerAuditJob, auditSpec string) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		ledgerAuditJob: ledgerAuditJob,
		auditSpec:      auditSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.auditSpec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(s.ledgerAuditJob)); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "ledger_audit", s.auditSpec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
