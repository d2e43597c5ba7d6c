package worker

import (
	"github.com/invento/inventory-api/internal/service"
)

// StartAuditWorker registers the audit subscriber on the event dispatcher.
func StartAuditWorker(audit *service.AuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
