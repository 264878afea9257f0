package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// envelope is the shared message shape on the platform bus. Publishers set
// either "event" or "type" as the discriminator; the payload sits under
// "data". Older publishers flatten the payload into the envelope, so parsing
// falls back to the whole body when "data" is absent.
type envelope struct {
	Event string          `json:"event"`
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
}

func (e envelope) kind() string {
	if e.Event != "" {
		return e.Event
	}
	return e.Type
}

// eventDate accepts RFC 3339 timestamps and bare dates; an absent date means
// the entry is dated at processing time.
type eventDate struct {
	time.Time
}

func (d *eventDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("unrecognized date %q", s)
	}
	d.Time = t
	return nil
}

func (d eventDate) orNow() time.Time {
	if d.IsZero() {
		return time.Now()
	}
	return d.Time
}

// saleLine carries the per-line tax share of a sale. The POS publisher sends
// tax per line item, not as an order-level total.
type saleLine struct {
	TaxAmount decimal.Decimal `json:"tax_amount"`
}

type saleClosedPayload struct {
	CompanyID   string          `json:"company_uuid"`
	WingID      *string         `json:"wing_uuid"`
	OrderNumber string          `json:"order_number"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Items       []saleLine      `json:"items"`
	TaxTotal    decimal.Decimal `json:"tax_total"`
	Date        eventDate       `json:"date"`
}

// taxTotal sums the per-line tax amounts; the flat tax_total field serves
// publishers that do not itemize.
func (p saleClosedPayload) taxTotal() decimal.Decimal {
	if len(p.Items) == 0 {
		return p.TaxTotal
	}
	total := decimal.Zero
	for _, line := range p.Items {
		total = total.Add(line.TaxAmount)
	}
	return total
}

type saleReturnedPayload struct {
	CompanyID    string          `json:"company_uuid"`
	WingID       *string         `json:"wing_uuid"`
	OrderNumber  string          `json:"order_number"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Date         eventDate       `json:"date"`
}

type payrollFinalizedPayload struct {
	CompanyID   string          `json:"company_uuid"`
	WingID      *string         `json:"wing_uuid"`
	PayslipID   string          `json:"payslip_id"`
	NetPay      decimal.Decimal `json:"net_pay"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Date        eventDate       `json:"date"`
}

type purchaseReceivedPayload struct {
	CompanyID   string          `json:"company_uuid"`
	WingID      *string         `json:"wing_uuid"`
	Reference   string          `json:"reference"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        eventDate       `json:"date"`
}

type purchasePaidPayload struct {
	CompanyID string          `json:"company_uuid"`
	WingID    *string         `json:"wing_uuid"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Date      eventDate       `json:"date"`
}

type assetDepreciationPayload struct {
	CompanyID  string          `json:"company_uuid"`
	WingID     *string         `json:"wing_uuid"`
	ScheduleID string          `json:"schedule_id"`
	AssetName  string          `json:"asset_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       eventDate       `json:"date"`
}

// parsedEvent is the decoded, typed form of one bus message.
type parsedEvent struct {
	Kind              string
	SaleClosed        *domain.SaleClosedEvent
	SaleReturned      *domain.SaleReturnedEvent
	PayrollFinalized  *domain.PayrollFinalizedEvent
	PurchaseReceived  *domain.PurchaseReceivedEvent
	PurchasePaid      *domain.PurchasePaidEvent
	AssetDepreciation *domain.AssetDepreciationEvent
}

// parseEvent decodes a bus message body into its typed event. The routing key
// wins over the envelope discriminator when both are present; when the routing
// key is empty (or a catch-all), the envelope decides.
func parseEvent(routingKey string, body []byte) (*parsedEvent, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed event envelope: %s", apperrors.ErrValidation, err.Error())
	}

	kind := routingKey
	if kind == "" || kind == "#" {
		kind = env.kind()
	}
	// The HRMS publisher sets the bare form in its envelope discriminator.
	if kind == "payroll_finalized" {
		kind = domain.EventPayrollFinalized
	}

	payload := env.Data
	if len(payload) == 0 {
		payload = body
	}

	ev := &parsedEvent{Kind: kind}
	switch kind {
	case domain.EventSaleClosed:
		var p saleClosedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed %s payload: %s", apperrors.ErrValidation, kind, err.Error())
		}
		ev.SaleClosed = &domain.SaleClosedEvent{
			CompanyID:   p.CompanyID,
			WingID:      p.WingID,
			OrderNumber: p.OrderNumber,
			GrandTotal:  p.GrandTotal,
			TaxTotal:    p.taxTotal(),
			Date:        p.Date.orNow(),
		}
	case domain.EventSaleReturned:
		var p saleReturnedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed %s payload: %s", apperrors.ErrValidation, kind, err.Error())
		}
		ev.SaleReturned = &domain.SaleReturnedEvent{
			CompanyID:    p.CompanyID,
			WingID:       p.WingID,
			OrderNumber:  p.OrderNumber,
			RefundAmount: p.RefundAmount,
			Date:         p.Date.orNow(),
		}
	case domain.EventPayrollFinalized:
		var p payrollFinalizedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed %s payload: %s", apperrors.ErrValidation, kind, err.Error())
		}
		ev.PayrollFinalized = &domain.PayrollFinalizedEvent{
			CompanyID:   p.CompanyID,
			WingID:      p.WingID,
			PayslipID:   p.PayslipID,
			NetPay:      p.NetPay,
			PeriodStart: p.PeriodStart,
			PeriodEnd:   p.PeriodEnd,
			Date:        p.Date.orNow(),
		}
	case domain.EventPurchaseReceived:
		var p purchaseReceivedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed %s payload: %s", apperrors.ErrValidation, kind, err.Error())
		}
		ev.PurchaseReceived = &domain.PurchaseReceivedEvent{
			CompanyID:   p.CompanyID,
			WingID:      p.WingID,
			Reference:   p.Reference,
			TotalAmount: p.TotalAmount,
			Date:        p.Date.orNow(),
		}
	case domain.EventPurchasePaid:
		var p purchasePaidPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed %s payload: %s", apperrors.ErrValidation, kind, err.Error())
		}
		ev.PurchasePaid = &domain.PurchasePaidEvent{
			CompanyID: p.CompanyID,
			WingID:    p.WingID,
			Reference: p.Reference,
			Amount:    p.Amount,
			Date:      p.Date.orNow(),
		}
	case domain.EventAssetDepreciation:
		var p assetDepreciationPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed %s payload: %s", apperrors.ErrValidation, kind, err.Error())
		}
		ev.AssetDepreciation = &domain.AssetDepreciationEvent{
			CompanyID:  p.CompanyID,
			WingID:     p.WingID,
			ScheduleID: p.ScheduleID,
			AssetName:  p.AssetName,
			Amount:     p.Amount,
			Date:       p.Date.orNow(),
		}
	default:
		return nil, fmt.Errorf("%w: unknown event kind %q", apperrors.ErrValidation, kind)
	}
	return ev, nil
}
