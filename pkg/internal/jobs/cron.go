// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/docvault/pkg/configs"
	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/storage"
	"github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每夜按配置的 cron 表达式镜像一次外部凭证系统
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	cron := configs.GetConfig().Vault.DiplomaSyncCron

	return sched.AddCron(JobDiplomaSync, cron, runDiplomaSync, baseCtx)
}

// runDiplomaSync 执行一轮凭证同步，失败只记日志，下一轮照常触发.
func runDiplomaSync(ctx context.Context) {
	l := log.Logger().With().Str("job", JobDiplomaSync).Logger()

	svc := service.NewVaultService(ctx)

	stats, err := svc.SyncDiplomas(ctx, "cron")
	if err != nil {
		l.Error().Err(err).Msg("diploma sync failed")

		return
	}

	l.Info().
		Int("folders_created", stats.FoldersCreated).
		Int("documents_created", stats.DocumentsCreated).
		Int("skipped", stats.Skipped).
		Msg("diploma sync done")
}
