package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/docvault/pkg/configs"
	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "run a one-off diploma sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.InitConfig(configPath); err != nil {
			return err
		}

		ctx := cmd.Context()

		mgr, err := storage.Init(ctx)
		if err != nil {
			return err
		}

		ctx = ctxPkg.WithStorageManager(ctx, mgr)
		svc := service.NewVaultService(ctx)

		if err := svc.Provision(ctx); err != nil {
			return err
		}

		stats, err := svc.SyncDiplomas(ctx, "cli")
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"folders created: %d\ndocuments created: %d\nskipped: %d\n",
			stats.FoldersCreated, stats.DocumentsCreated, stats.Skipped)

		return nil
	},
}

// registerSyncCommands 注册同步命令.
func registerSyncCommands() {
	rootCmd.AddCommand(syncCmd)
}
