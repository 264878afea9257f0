package consumer

import (
	"testing"
	"time"

	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent_EnvelopeWithData(t *testing.T) {
	body := []byte(`{
		"event": "pos.sale.closed",
		"data": {
			"company_uuid": "c-1",
			"order_number": "SO-1001",
			"grand_total": 200,
			"tax_total": 20,
			"date": "2026-04-02T10:30:00Z"
		}
	}`)

	ev, err := parseEvent(domain.EventSaleClosed, body)

	require.NoError(t, err)
	require.NotNil(t, ev.SaleClosed)
	assert.Equal(t, "c-1", ev.SaleClosed.CompanyID)
	assert.Equal(t, "SO-1001", ev.SaleClosed.OrderNumber)
	assert.True(t, ev.SaleClosed.GrandTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, ev.SaleClosed.TaxTotal.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC), ev.SaleClosed.Date.UTC())
}

func TestParseEvent_SaleWithItemizedTax(t *testing.T) {
	body := []byte(`{
		"event": "pos.sale.closed",
		"company_uuid": "T1",
		"wing_uuid": "w-3",
		"grand_total": 200.00,
		"order_number": "ORD-1",
		"items": [{"tax_amount": 12.50}, {"tax_amount": 7.50}]
	}`)

	ev, err := parseEvent(domain.EventSaleClosed, body)

	require.NoError(t, err)
	require.NotNil(t, ev.SaleClosed)
	assert.Equal(t, "T1", ev.SaleClosed.CompanyID)
	require.NotNil(t, ev.SaleClosed.WingID)
	assert.Equal(t, "w-3", *ev.SaleClosed.WingID)
	assert.Equal(t, "ORD-1", ev.SaleClosed.OrderNumber)
	assert.True(t, ev.SaleClosed.GrandTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, ev.SaleClosed.TaxTotal.Equal(decimal.NewFromInt(20)))
}

func TestParseEvent_ItemizedTaxWinsOverFlatTotal(t *testing.T) {
	body := []byte(`{
		"company_uuid": "c-1",
		"order_number": "SO-9",
		"grand_total": 100,
		"tax_total": 99,
		"items": [{"tax_amount": 10}]
	}`)

	ev, err := parseEvent(domain.EventSaleClosed, body)

	require.NoError(t, err)
	assert.True(t, ev.SaleClosed.TaxTotal.Equal(decimal.NewFromInt(10)))
}

func TestParseEvent_FlatBodyFallback(t *testing.T) {
	body := []byte(`{
		"company_uuid": "c-1",
		"order_number": "SO-1002",
		"refund_amount": "40.50",
		"date": "2026-04-03"
	}`)

	ev, err := parseEvent(domain.EventSaleReturned, body)

	require.NoError(t, err)
	require.NotNil(t, ev.SaleReturned)
	assert.Equal(t, "c-1", ev.SaleReturned.CompanyID)
	assert.True(t, ev.SaleReturned.RefundAmount.Equal(decimal.RequireFromString("40.50")))
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), ev.SaleReturned.Date)
}

func TestParseEvent_EnvelopeKindWhenRoutingKeyIsCatchAll(t *testing.T) {
	body := []byte(`{
		"type": "hrms.payroll.finalized",
		"data": {
			"company_uuid": "c-1",
			"payslip_id": "PS-77",
			"net_pay": 1500,
			"period_start": "2026-03-01",
			"period_end": "2026-03-31"
		}
	}`)

	ev, err := parseEvent("#", body)

	require.NoError(t, err)
	require.NotNil(t, ev.PayrollFinalized)
	assert.Equal(t, "PS-77", ev.PayrollFinalized.PayslipID)
	assert.Equal(t, "2026-03-01", ev.PayrollFinalized.PeriodStart)
}

func TestParseEvent_BarePayrollDiscriminator(t *testing.T) {
	body := []byte(`{
		"type": "payroll_finalized",
		"company_uuid": "c-1",
		"payslip_id": "PS-78",
		"net_pay": 1500,
		"period_start": "2026-03-01",
		"period_end": "2026-03-31"
	}`)

	ev, err := parseEvent("", body)

	require.NoError(t, err)
	require.NotNil(t, ev.PayrollFinalized)
	assert.Equal(t, domain.EventPayrollFinalized, ev.Kind)
	assert.Equal(t, "PS-78", ev.PayrollFinalized.PayslipID)
}

func TestParseEvent_RoutingKeyWinsOverEnvelope(t *testing.T) {
	body := []byte(`{
		"event": "pos.sale.closed",
		"data": {"company_uuid": "c-1", "reference": "2026-019", "total_amount": 800}
	}`)

	ev, err := parseEvent(domain.EventPurchaseReceived, body)

	require.NoError(t, err)
	require.NotNil(t, ev.PurchaseReceived)
	assert.Nil(t, ev.SaleClosed)
	assert.Equal(t, "2026-019", ev.PurchaseReceived.Reference)
}

func TestParseEvent_MissingDateDefaultsToNow(t *testing.T) {
	body := []byte(`{"company_uuid": "c-1", "schedule_id": "SCH-5", "amount": 250}`)

	before := time.Now()
	ev, err := parseEvent(domain.EventAssetDepreciation, body)
	after := time.Now()

	require.NoError(t, err)
	require.NotNil(t, ev.AssetDepreciation)
	assert.Equal(t, "c-1", ev.AssetDepreciation.CompanyID)
	assert.False(t, ev.AssetDepreciation.Date.Before(before))
	assert.False(t, ev.AssetDepreciation.Date.After(after))
}

func TestParseEvent_PurchasePaid(t *testing.T) {
	body := []byte(`{"company_uuid": "c-1", "reference": "2026-019", "amount": 800, "date": "2026-04-10"}`)

	ev, err := parseEvent(domain.EventPurchasePaid, body)

	require.NoError(t, err)
	require.NotNil(t, ev.PurchasePaid)
	assert.Equal(t, "c-1", ev.PurchasePaid.CompanyID)
	assert.True(t, ev.PurchasePaid.Amount.Equal(decimal.NewFromInt(800)))
}

func TestParseEvent_UnknownKind(t *testing.T) {
	_, err := parseEvent("inventory.stock.counted", []byte(`{"company_uuid": "c-1"}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseEvent_MalformedBody(t *testing.T) {
	_, err := parseEvent(domain.EventSaleClosed, []byte(`{not json`))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseEvent_MalformedDate(t *testing.T) {
	body := []byte(`{"company_uuid": "c-1", "order_number": "SO-1", "grand_total": 10, "date": "last tuesday"}`)

	_, err := parseEvent(domain.EventSaleClosed, body)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
