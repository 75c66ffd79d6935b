// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/spondon-bd/spondon/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// reconciler is started in Startup and stopped in Shutdown.
var reconciler *workers.ApprovalReconciler

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.ReconcileInterval > 0 {
		reconciler = workers.NewApprovalReconciler(deps.MongoDatabase, logger, appCfg.ReconcileInterval)
		reconciler.Start()
	} else {
		logger.Info("approval reconciler disabled")
	}
	return nil
}
