package job

import (
	"context"

	"github.com/JuanTorresCortes/auth-server/internal/service"
)

// ReconcileJob periodically rebuilds every user's task reference collection
// from the tasks table, repairing drift left behind by partial failures.
type ReconcileJob struct {
	maintenance *service.MaintenanceService
}

func NewReconcileJob(maintenance *service.MaintenanceService) *ReconcileJob {
	return &ReconcileJob{maintenance: maintenance}
}

func (j *ReconcileJob) Name() string {
	return "task_ref_reconcile"
}

func (j *ReconcileJob) Run(ctx context.Context) error {
	if j.maintenance == nil {
		return nil
	}
	return j.maintenance.ReconcileTaskRefs(ctx)
}
