package services

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// PostingSvcFacade turns validated domain events into balanced journal
// entries. Every handler is idempotent on the entry reference: redelivered
// events are skipped, not double-posted.
type PostingSvcFacade interface {
	HandleSaleClosed(ctx context.Context, event domain.SaleClosedEvent) error
	HandleSaleReturned(ctx context.Context, event domain.SaleReturnedEvent) error
	HandlePayrollFinalized(ctx context.Context, event domain.PayrollFinalizedEvent) error
	HandlePurchaseReceived(ctx context.Context, event domain.PurchaseReceivedEvent) error
	HandlePurchasePaid(ctx context.Context, event domain.PurchasePaidEvent) error
	HandleAssetDepreciation(ctx context.Context, event domain.AssetDepreciationEvent) error
}
