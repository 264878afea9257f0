package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event kinds consumed by the posting automation. These mirror the routing
// keys published on the shared topic exchange.
const (
	EventSaleClosed        = "pos.sale.closed"
	EventSaleReturned      = "pos.sale.returned"
	EventPayrollFinalized  = "hrms.payroll.finalized"
	EventPurchaseReceived  = "purchase.order.received"
	EventPurchasePaid      = "purchase.payment.recorded"
	EventAssetDepreciation = "asset.depreciation"
)

// SaleClosedEvent is emitted by the POS service when a sale completes.
// TaxTotal is the sum of per-line tax amounts; revenue is GrandTotal less tax.
type SaleClosedEvent struct {
	CompanyID   string
	WingID      *string
	OrderNumber string
	GrandTotal  decimal.Decimal
	TaxTotal    decimal.Decimal
	Date        time.Time
}

// SaleReturnedEvent is emitted by the POS service when a sale is refunded.
type SaleReturnedEvent struct {
	CompanyID    string
	WingID       *string
	OrderNumber  string
	RefundAmount decimal.Decimal
	Date         time.Time
}

// PayrollFinalizedEvent is emitted by the HRMS service per finalized payslip.
type PayrollFinalizedEvent struct {
	CompanyID   string
	WingID      *string
	PayslipID   string
	NetPay      decimal.Decimal
	PeriodStart string
	PeriodEnd   string
	Date        time.Time
}

// PurchaseReceivedEvent is emitted when a purchase order is received into stock.
type PurchaseReceivedEvent struct {
	CompanyID   string
	WingID      *string
	Reference   string
	TotalAmount decimal.Decimal
	Date        time.Time
}

// PurchasePaidEvent is emitted when a payment is recorded against a purchase order.
type PurchasePaidEvent struct {
	CompanyID string
	WingID    *string
	Reference string
	Amount    decimal.Decimal
	Date      time.Time
}

// AssetDepreciationEvent is emitted by the asset service per depreciation
// schedule run.
type AssetDepreciationEvent struct {
	CompanyID  string
	WingID     *string
	ScheduleID string
	AssetName  string
	Amount     decimal.Decimal
	Date       time.Time
}
