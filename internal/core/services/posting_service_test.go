package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/core/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalSvc    *MockJournalService
	mockSystemAccount *MockSystemAccountService
	mockJournalRepo   *MockJournalRepository
	service           *services.PostingService

	companyID string
	eventDate time.Time
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockJournalSvc = new(MockJournalService)
	s.mockSystemAccount = new(MockSystemAccountService)
	s.mockJournalRepo = new(MockJournalRepository)
	s.service = services.NewPostingService(s.mockJournalSvc, s.mockSystemAccount, s.mockJournalRepo)

	s.companyID = uuid.NewString()
	s.eventDate = time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
}

// expectResolve registers the purpose-to-account resolution for one purpose.
func (s *PostingServiceTestSuite) expectResolve(purpose domain.AccountPurpose) *domain.ChartOfAccount {
	account := &domain.ChartOfAccount{
		AccountID: uuid.NewString(),
		CompanyID: s.companyID,
	}
	s.mockSystemAccount.On("ResolveAccount", mock.Anything, s.companyID, purpose).Return(account, nil).Once()
	return account
}

func (s *PostingServiceTestSuite) expectNotPosted(reference string) {
	s.mockJournalRepo.On("EntryExistsByReference", mock.Anything, s.companyID, reference).Return(false, nil).Once()
}

func (s *PostingServiceTestSuite) captureCreate(source domain.EntrySource) *dto.CreateJournalEntryRequest {
	captured := &dto.CreateJournalEntryRequest{}
	s.mockJournalSvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest"), source, "").
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(dto.CreateJournalEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	return captured
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_SplitsTax() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		CompanyID:   s.companyID,
		OrderNumber: "SO-1001",
		GrandTotal:  decimal.NewFromInt(200),
		TaxTotal:    decimal.NewFromInt(20),
		Date:        s.eventDate,
	}

	s.expectNotPosted("SO-1001")
	cash := s.expectResolve(domain.PurposeCashOnHand)
	revenue := s.expectResolve(domain.PurposeSalesRevenue)
	tax := s.expectResolve(domain.PurposeSalesTaxPayable)
	captured := s.captureCreate(domain.SourcePOS)

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().NoError(err)
	s.Equal("SO-1001", captured.Reference)
	s.Equal(string(domain.VoucherReceipt), captured.VoucherType)
	s.Require().Len(captured.Items, 3)
	s.Equal(cash.AccountID, captured.Items[0].AccountID)
	s.True(captured.Items[0].Debit.Equal(decimal.NewFromInt(200)))
	s.Equal(revenue.AccountID, captured.Items[1].AccountID)
	s.True(captured.Items[1].Credit.Equal(decimal.NewFromInt(180)))
	s.Equal(tax.AccountID, captured.Items[2].AccountID)
	s.True(captured.Items[2].Credit.Equal(decimal.NewFromInt(20)))

	s.mockSystemAccount.AssertExpectations(s.T())
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_NoTaxLine() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		CompanyID:   s.companyID,
		OrderNumber: "SO-1002",
		GrandTotal:  decimal.NewFromInt(50),
		Date:        s.eventDate,
	}

	s.expectNotPosted("SO-1002")
	s.expectResolve(domain.PurposeCashOnHand)
	s.expectResolve(domain.PurposeSalesRevenue)
	captured := s.captureCreate(domain.SourcePOS)

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().NoError(err)
	s.Len(captured.Items, 2)
	s.mockSystemAccount.AssertNotCalled(s.T(), "ResolveAccount", mock.Anything, s.companyID, domain.PurposeSalesTaxPayable)
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_AlreadyPosted() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		CompanyID:   s.companyID,
		OrderNumber: "SO-1003",
		GrandTotal:  decimal.NewFromInt(100),
		Date:        s.eventDate,
	}

	s.mockJournalRepo.On("EntryExistsByReference", mock.Anything, s.companyID, "SO-1003").Return(true, nil).Once()

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().NoError(err)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockSystemAccount.AssertNotCalled(s.T(), "ResolveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_ConcurrentDuplicateSkips() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		CompanyID:   s.companyID,
		OrderNumber: "SO-1007",
		GrandTotal:  decimal.NewFromInt(100),
		Date:        s.eventDate,
	}

	s.expectNotPosted("SO-1007")
	s.expectResolve(domain.PurposeCashOnHand)
	s.expectResolve(domain.PurposeSalesRevenue)
	s.mockJournalSvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest"), domain.SourcePOS, "").
		Return(nil, fmt.Errorf("%w: journal entry exists", apperrors.ErrDuplicate)).Once()

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().NoError(err)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_ZeroTotalSkips() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		CompanyID:   s.companyID,
		OrderNumber: "SO-1004",
		GrandTotal:  decimal.Zero,
		Date:        s.eventDate,
	}

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().NoError(err)
	s.mockJournalRepo.AssertNotCalled(s.T(), "EntryExistsByReference", mock.Anything, mock.Anything, mock.Anything)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_TaxExceedsTotal() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		CompanyID:   s.companyID,
		OrderNumber: "SO-1005",
		GrandTotal:  decimal.NewFromInt(100),
		TaxTotal:    decimal.NewFromInt(120),
		Date:        s.eventDate,
	}

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestHandleSaleClosed_MissingCompany() {
	ctx := context.Background()
	event := domain.SaleClosedEvent{
		OrderNumber: "SO-1006",
		GrandTotal:  decimal.NewFromInt(100),
		Date:        s.eventDate,
	}

	err := s.service.HandleSaleClosed(ctx, event)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestHandleSaleReturned() {
	ctx := context.Background()
	event := domain.SaleReturnedEvent{
		CompanyID:    s.companyID,
		OrderNumber:  "SO-1001",
		RefundAmount: decimal.NewFromInt(40),
		Date:         s.eventDate,
	}

	s.expectNotPosted("RET-SO-1001")
	returns := s.expectResolve(domain.PurposeSalesReturns)
	cash := s.expectResolve(domain.PurposeCashOnHand)
	captured := s.captureCreate(domain.SourcePOS)

	err := s.service.HandleSaleReturned(ctx, event)

	s.Require().NoError(err)
	s.Equal("RET-SO-1001", captured.Reference)
	s.Equal(string(domain.VoucherPayment), captured.VoucherType)
	s.Require().Len(captured.Items, 2)
	s.Equal(returns.AccountID, captured.Items[0].AccountID)
	s.True(captured.Items[0].Debit.Equal(decimal.NewFromInt(40)))
	s.Equal(cash.AccountID, captured.Items[1].AccountID)
	s.True(captured.Items[1].Credit.Equal(decimal.NewFromInt(40)))
}

func (s *PostingServiceTestSuite) TestHandlePayrollFinalized() {
	ctx := context.Background()
	event := domain.PayrollFinalizedEvent{
		CompanyID:   s.companyID,
		PayslipID:   "PS-77",
		NetPay:      decimal.NewFromInt(1500),
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Date:        s.eventDate,
	}

	s.expectNotPosted("PAYAP-PS-77")
	expense := s.expectResolve(domain.PurposeSalariesExpense)
	payable := s.expectResolve(domain.PurposeSalariesPayable)
	captured := s.captureCreate(domain.SourceOther)

	err := s.service.HandlePayrollFinalized(ctx, event)

	s.Require().NoError(err)
	s.Equal("PAYAP-PS-77", captured.Reference)
	s.Contains(captured.Description, "2026-03-01")
	s.Require().Len(captured.Items, 2)
	s.Equal(expense.AccountID, captured.Items[0].AccountID)
	s.True(captured.Items[0].Debit.Equal(decimal.NewFromInt(1500)))
	s.Equal(payable.AccountID, captured.Items[1].AccountID)
	s.True(captured.Items[1].Credit.Equal(decimal.NewFromInt(1500)))
}

func (s *PostingServiceTestSuite) TestHandlePurchaseReceived() {
	ctx := context.Background()
	event := domain.PurchaseReceivedEvent{
		CompanyID:   s.companyID,
		Reference:   "2026-019",
		TotalAmount: decimal.NewFromInt(800),
		Date:        s.eventDate,
	}

	s.expectNotPosted("PO-2026-019")
	inventory := s.expectResolve(domain.PurposeInventory)
	payable := s.expectResolve(domain.PurposeAccountsPayable)
	captured := s.captureCreate(domain.SourcePurchase)

	err := s.service.HandlePurchaseReceived(ctx, event)

	s.Require().NoError(err)
	s.Equal("PO-2026-019", captured.Reference)
	s.Require().Len(captured.Items, 2)
	s.Equal(inventory.AccountID, captured.Items[0].AccountID)
	s.True(captured.Items[0].Debit.Equal(decimal.NewFromInt(800)))
	s.Equal(payable.AccountID, captured.Items[1].AccountID)
	s.True(captured.Items[1].Credit.Equal(decimal.NewFromInt(800)))
}

func (s *PostingServiceTestSuite) TestHandlePurchasePaid() {
	ctx := context.Background()
	event := domain.PurchasePaidEvent{
		CompanyID: s.companyID,
		Reference: "2026-019",
		Amount:    decimal.NewFromInt(800),
		Date:      s.eventDate,
	}

	s.expectNotPosted("POPAY-2026-019")
	payable := s.expectResolve(domain.PurposeAccountsPayable)
	cash := s.expectResolve(domain.PurposeCashOnHand)
	captured := s.captureCreate(domain.SourcePurchase)

	err := s.service.HandlePurchasePaid(ctx, event)

	s.Require().NoError(err)
	s.Equal("POPAY-2026-019", captured.Reference)
	s.Equal(string(domain.VoucherPayment), captured.VoucherType)
	s.Require().Len(captured.Items, 2)
	s.Equal(payable.AccountID, captured.Items[0].AccountID)
	s.Equal(cash.AccountID, captured.Items[1].AccountID)
}

func (s *PostingServiceTestSuite) TestHandleAssetDepreciation() {
	ctx := context.Background()
	event := domain.AssetDepreciationEvent{
		CompanyID:  s.companyID,
		ScheduleID: "SCH-5",
		AssetName:  "Delivery Van",
		Amount:     decimal.NewFromInt(250),
		Date:       s.eventDate,
	}

	s.expectNotPosted("DEP-SCH-5")
	expense := s.expectResolve(domain.PurposeDepreciationExpense)
	accumulated := s.expectResolve(domain.PurposeAccumulatedDepreciation)
	captured := s.captureCreate(domain.SourceOther)

	err := s.service.HandleAssetDepreciation(ctx, event)

	s.Require().NoError(err)
	s.Equal("DEP-SCH-5", captured.Reference)
	s.Equal("Depreciation of Delivery Van", captured.Description)
	s.Require().Len(captured.Items, 2)
	s.Equal(expense.AccountID, captured.Items[0].AccountID)
	s.True(captured.Items[0].Debit.Equal(decimal.NewFromInt(250)))
	s.Equal(accumulated.AccountID, captured.Items[1].AccountID)
	s.True(captured.Items[1].Credit.Equal(decimal.NewFromInt(250)))
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
