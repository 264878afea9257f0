package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/retailos/accounting_service/internal/middleware"
	"github.com/shopspring/decimal"
)

// PostingService turns platform events into balanced journal entries. Handlers
// are idempotent on the entry reference, so at-least-once delivery never
// double-posts. All entries go through the journal engine, which owns the
// atomicity and the balance recompute.
type PostingService struct {
	journal       portssvc.JournalSvcFacade
	systemAccount portssvc.SystemAccountSvcFacade
	journalRepo   portsrepo.JournalReader
}

func NewPostingService(
	journal portssvc.JournalSvcFacade,
	systemAccount portssvc.SystemAccountSvcFacade,
	journalRepo portsrepo.JournalReader,
) *PostingService {
	return &PostingService{
		journal:       journal,
		systemAccount: systemAccount,
		journalRepo:   journalRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*PostingService)(nil)

// alreadyPosted probes the idempotency reference. True means the event was
// processed before and the delivery should be acknowledged without posting.
func (s *PostingService) alreadyPosted(ctx context.Context, companyID, reference string) (bool, error) {
	exists, err := s.journalRepo.EntryExistsByReference(ctx, companyID, reference)
	if err != nil {
		return false, err
	}
	if exists {
		middleware.GetLoggerFromCtx(ctx).Info("Event already posted, skipping", slog.String("reference", reference))
	}
	return exists, nil
}

func (s *PostingService) post(ctx context.Context, companyID string, wingID *string, voucherType domain.VoucherType, source domain.EntrySource, date time.Time, reference, description string, items []dto.JournalItemRequest) error {
	req := dto.CreateJournalEntryRequest{
		CompanyID:   companyID,
		WingID:      wingID,
		VoucherType: string(voucherType),
		Date:        date,
		Reference:   reference,
		Description: description,
		Items:       items,
	}
	_, err := s.journal.CreateEntry(ctx, req, source, "")
	if errors.Is(err, apperrors.ErrDuplicate) {
		// A concurrent consumer won the insert race on the same reference
		// after both passed the existence check.
		middleware.GetLoggerFromCtx(ctx).Info("Event already posted concurrently, skipping",
			slog.String("reference", reference))
		return nil
	}
	return err
}

// HandleSaleClosed posts the revenue entry of one completed sale: cash is
// debited for the grand total, revenue credited net of tax, and the collected
// tax credited to its liability account.
func (s *PostingService) HandleSaleClosed(ctx context.Context, event domain.SaleClosedEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.CompanyID == "" || event.OrderNumber == "" {
		return fmt.Errorf("%w: sale event missing company or order number", apperrors.ErrValidation)
	}
	if !event.GrandTotal.IsPositive() {
		logger.Warn("Sale with non-positive total, nothing to post", slog.String("order", event.OrderNumber))
		return nil
	}
	if event.TaxTotal.IsNegative() || event.TaxTotal.GreaterThan(event.GrandTotal) {
		return fmt.Errorf("%w: sale tax %s out of range for total %s", apperrors.ErrValidation, event.TaxTotal, event.GrandTotal)
	}

	if done, err := s.alreadyPosted(ctx, event.CompanyID, event.OrderNumber); err != nil || done {
		return err
	}

	cash, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeCashOnHand)
	if err != nil {
		return err
	}
	revenue, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeSalesRevenue)
	if err != nil {
		return err
	}

	netRevenue := event.GrandTotal.Sub(event.TaxTotal)
	items := []dto.JournalItemRequest{
		{AccountID: cash.AccountID, Debit: event.GrandTotal, Credit: decimal.Zero, Description: "Sale " + event.OrderNumber},
		{AccountID: revenue.AccountID, Debit: decimal.Zero, Credit: netRevenue, Description: "Revenue for sale " + event.OrderNumber},
	}
	if event.TaxTotal.IsPositive() {
		taxPayable, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeSalesTaxPayable)
		if err != nil {
			return err
		}
		items = append(items, dto.JournalItemRequest{
			AccountID: taxPayable.AccountID, Debit: decimal.Zero, Credit: event.TaxTotal,
			Description: "Tax collected on sale " + event.OrderNumber,
		})
	}

	return s.post(ctx, event.CompanyID, event.WingID, domain.VoucherReceipt, domain.SourcePOS,
		event.Date, event.OrderNumber, "POS sale "+event.OrderNumber, items)
}

// HandleSaleReturned posts the refund entry of a returned sale.
func (s *PostingService) HandleSaleReturned(ctx context.Context, event domain.SaleReturnedEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.CompanyID == "" || event.OrderNumber == "" {
		return fmt.Errorf("%w: return event missing company or order number", apperrors.ErrValidation)
	}
	if !event.RefundAmount.IsPositive() {
		logger.Warn("Return with non-positive refund, nothing to post", slog.String("order", event.OrderNumber))
		return nil
	}

	reference := "RET-" + event.OrderNumber
	if done, err := s.alreadyPosted(ctx, event.CompanyID, reference); err != nil || done {
		return err
	}

	returns, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeSalesReturns)
	if err != nil {
		return err
	}
	cash, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeCashOnHand)
	if err != nil {
		return err
	}

	items := []dto.JournalItemRequest{
		{AccountID: returns.AccountID, Debit: event.RefundAmount, Credit: decimal.Zero, Description: "Return of sale " + event.OrderNumber},
		{AccountID: cash.AccountID, Debit: decimal.Zero, Credit: event.RefundAmount, Description: "Refund for sale " + event.OrderNumber},
	}

	return s.post(ctx, event.CompanyID, event.WingID, domain.VoucherPayment, domain.SourcePOS,
		event.Date, reference, "Refund for sale "+event.OrderNumber, items)
}

// HandlePayrollFinalized accrues one finalized payslip: salaries expense is
// debited and salaries payable credited for the net pay.
func (s *PostingService) HandlePayrollFinalized(ctx context.Context, event domain.PayrollFinalizedEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.CompanyID == "" || event.PayslipID == "" {
		return fmt.Errorf("%w: payroll event missing company or payslip id", apperrors.ErrValidation)
	}
	if !event.NetPay.IsPositive() {
		logger.Warn("Payslip with non-positive net pay, nothing to post", slog.String("payslip", event.PayslipID))
		return nil
	}

	reference := "PAYAP-" + event.PayslipID
	if done, err := s.alreadyPosted(ctx, event.CompanyID, reference); err != nil || done {
		return err
	}

	expense, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeSalariesExpense)
	if err != nil {
		return err
	}
	payable, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeSalariesPayable)
	if err != nil {
		return err
	}

	description := "Payroll accrual for payslip " + event.PayslipID
	if event.PeriodStart != "" && event.PeriodEnd != "" {
		description = fmt.Sprintf("Payroll accrual %s to %s, payslip %s", event.PeriodStart, event.PeriodEnd, event.PayslipID)
	}
	items := []dto.JournalItemRequest{
		{AccountID: expense.AccountID, Debit: event.NetPay, Credit: decimal.Zero, Description: "Salaries expense"},
		{AccountID: payable.AccountID, Debit: decimal.Zero, Credit: event.NetPay, Description: "Salaries payable"},
	}

	return s.post(ctx, event.CompanyID, event.WingID, domain.VoucherJournal, domain.SourceOther,
		event.Date, reference, description, items)
}

// HandlePurchaseReceived posts stock received against a purchase order:
// inventory is debited and accounts payable credited.
func (s *PostingService) HandlePurchaseReceived(ctx context.Context, event domain.PurchaseReceivedEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.CompanyID == "" || event.Reference == "" {
		return fmt.Errorf("%w: purchase event missing company or reference", apperrors.ErrValidation)
	}
	if !event.TotalAmount.IsPositive() {
		logger.Warn("Purchase with non-positive total, nothing to post", slog.String("reference", event.Reference))
		return nil
	}

	reference := "PO-" + event.Reference
	if done, err := s.alreadyPosted(ctx, event.CompanyID, reference); err != nil || done {
		return err
	}

	inventory, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeInventory)
	if err != nil {
		return err
	}
	payable, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeAccountsPayable)
	if err != nil {
		return err
	}

	items := []dto.JournalItemRequest{
		{AccountID: inventory.AccountID, Debit: event.TotalAmount, Credit: decimal.Zero, Description: "Stock received " + event.Reference},
		{AccountID: payable.AccountID, Debit: decimal.Zero, Credit: event.TotalAmount, Description: "Payable for " + event.Reference},
	}

	return s.post(ctx, event.CompanyID, event.WingID, domain.VoucherJournal, domain.SourcePurchase,
		event.Date, reference, "Purchase order received "+event.Reference, items)
}

// HandlePurchasePaid posts a payment against a purchase order: accounts
// payable is debited and cash credited.
func (s *PostingService) HandlePurchasePaid(ctx context.Context, event domain.PurchasePaidEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.CompanyID == "" || event.Reference == "" {
		return fmt.Errorf("%w: payment event missing company or reference", apperrors.ErrValidation)
	}
	if !event.Amount.IsPositive() {
		logger.Warn("Payment with non-positive amount, nothing to post", slog.String("reference", event.Reference))
		return nil
	}

	reference := "POPAY-" + event.Reference
	if done, err := s.alreadyPosted(ctx, event.CompanyID, reference); err != nil || done {
		return err
	}

	payable, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeAccountsPayable)
	if err != nil {
		return err
	}
	cash, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeCashOnHand)
	if err != nil {
		return err
	}

	items := []dto.JournalItemRequest{
		{AccountID: payable.AccountID, Debit: event.Amount, Credit: decimal.Zero, Description: "Payment for " + event.Reference},
		{AccountID: cash.AccountID, Debit: decimal.Zero, Credit: event.Amount, Description: "Cash paid for " + event.Reference},
	}

	return s.post(ctx, event.CompanyID, event.WingID, domain.VoucherPayment, domain.SourcePurchase,
		event.Date, reference, "Purchase payment "+event.Reference, items)
}

// HandleAssetDepreciation posts one depreciation schedule run: depreciation
// expense is debited and accumulated depreciation credited.
func (s *PostingService) HandleAssetDepreciation(ctx context.Context, event domain.AssetDepreciationEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.CompanyID == "" || event.ScheduleID == "" {
		return fmt.Errorf("%w: depreciation event missing company or schedule id", apperrors.ErrValidation)
	}
	if !event.Amount.IsPositive() {
		logger.Warn("Depreciation with non-positive amount, nothing to post", slog.String("schedule", event.ScheduleID))
		return nil
	}

	reference := "DEP-" + event.ScheduleID
	if done, err := s.alreadyPosted(ctx, event.CompanyID, reference); err != nil || done {
		return err
	}

	expense, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeDepreciationExpense)
	if err != nil {
		return err
	}
	accumulated, err := s.systemAccount.ResolveAccount(ctx, event.CompanyID, domain.PurposeAccumulatedDepreciation)
	if err != nil {
		return err
	}

	description := "Depreciation " + event.ScheduleID
	if event.AssetName != "" {
		description = "Depreciation of " + event.AssetName
	}
	items := []dto.JournalItemRequest{
		{AccountID: expense.AccountID, Debit: event.Amount, Credit: decimal.Zero, Description: description},
		{AccountID: accumulated.AccountID, Debit: decimal.Zero, Credit: event.Amount, Description: description},
	}

	return s.post(ctx, event.CompanyID, event.WingID, domain.VoucherJournal, domain.SourceOther,
		event.Date, reference, description, items)
}
