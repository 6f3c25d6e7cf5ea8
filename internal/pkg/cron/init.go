package cron

import (
	"context"
	log "log/slog"
)

// Run 注册任务并启动引擎，阻塞到 ctx 结束后等待运行中的任务退出
func Run(ctx context.Context, mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		log.Error("Cron jobs register failed", "err", err)
		return err
	}
	mgr.Start()

	<-ctx.Done()
	mgr.Stop()
	return nil
}
