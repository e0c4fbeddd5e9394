package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/utils"
)

// Direction is the money-flow intent of a settlement transaction.
type Direction string

const (
	// Payment moves money out of the business.
	Payment Direction = "payment"
	// Receipt moves money into the business.
	Receipt Direction = "receipt"
)

// BuildInput carries everything needed to construct a settlement record.
type BuildInput struct {
	Resolution  Resolution
	Amount      decimal.Decimal
	Direction   Direction
	AccountID   string
	Date        time.Time
	Mode        domain.PaymentMode
	Description string
	UserID      string
}

// BuildTransaction constructs a canonical settlement record against a
// resolved counterparty. It is pure: validation failures return before any
// record exists, and persistence is the caller's concern.
//
// Balance projection is symmetric around the entity's natural role: a flow
// matching the role (vendor payment, client receipt) moves the outstanding
// balance toward zero, the reversal flow (vendor receipt, client payment)
// moves it away.
//
// TotalAmount is set to the pre-transaction outstanding balance, not the
// settled amount: "total" is what was owed, "paid" is what was settled now,
// "remaining" is what is left.
func BuildTransaction(in BuildInput) (domain.TransactionRecord, error) {
	if !in.Amount.IsPositive() {
		return domain.TransactionRecord{}, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, in.Amount)
	}
	if in.AccountID == "" {
		return domain.TransactionRecord{}, apperrors.ErrMissingAccount
	}
	if in.Resolution.Entity.CounterpartyID == "" {
		return domain.TransactionRecord{}, apperrors.ErrEntityNotFound
	}

	balance := in.Resolution.CurrentBalance
	role := in.Resolution.Classification

	var remainingAfter decimal.Decimal
	var txnType domain.TransactionType
	switch {
	case role == domain.RoleVendor && in.Direction == Payment:
		remainingAfter = balance.Sub(in.Amount)
		txnType = domain.PayAble
	case role == domain.RoleVendor && in.Direction == Receipt:
		remainingAfter = balance.Add(in.Amount)
		txnType = domain.ReceiveAbleVendor
	case role == domain.RoleClient && in.Direction == Receipt:
		remainingAfter = balance.Sub(in.Amount)
		txnType = domain.ReceiveAble
	case role == domain.RoleClient && in.Direction == Payment:
		remainingAfter = balance.Add(in.Amount)
		txnType = domain.PayAbleClient
	default:
		return domain.TransactionRecord{}, fmt.Errorf("%w: unknown role %q", apperrors.ErrEntityNotFound, role)
	}

	rec := domain.TransactionRecord{
		TransactionID:    uuid.NewString(),
		Type:             txnType,
		Date:             in.Date,
		TotalAmount:      balance.Round(2),
		PaidAmount:       in.Amount.Round(2),
		RemainingPayment: remainingAfter.Round(2),
		ModeOfPayment:    in.Mode,
		Description:      annotate(in.Description, in.Resolution, in.Direction),
		UserID:           in.UserID,
	}
	switch role {
	case domain.RoleVendor:
		rec.AccountPayableID = in.Resolution.Entity.CounterpartyID
	case domain.RoleClient:
		rec.AccountReceivableID = in.Resolution.Entity.CounterpartyID
	}
	// Money out draws on the source account, money in lands on the destination.
	if in.Direction == Payment {
		rec.SourceAccountID = in.AccountID
	} else {
		rec.DestinationAccountID = in.AccountID
	}
	return rec, nil
}

// BuildAdvance constructs an advance payment/receipt. Advances have no prior
// debt to reconcile, so they are fully settled at creation:
// total = paid, remaining = 0 unconditionally.
func BuildAdvance(entity domain.Counterparty, amount decimal.Decimal, accountID string, date time.Time, mode domain.PaymentMode, description, userID string) (domain.TransactionRecord, error) {
	if !amount.IsPositive() {
		return domain.TransactionRecord{}, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}
	if accountID == "" {
		return domain.TransactionRecord{}, apperrors.ErrMissingAccount
	}
	if entity.CounterpartyID == "" {
		return domain.TransactionRecord{}, apperrors.ErrEntityNotFound
	}

	rec := domain.TransactionRecord{
		TransactionID:    uuid.NewString(),
		Type:             domain.AdvanceSalePayment,
		Date:             date,
		TotalAmount:      amount.Round(2),
		PaidAmount:       amount.Round(2),
		RemainingPayment: decimal.Zero.Round(2),
		ModeOfPayment:    mode,
		Description:      description,
		UserID:           userID,
	}
	switch entity.Role {
	case domain.RoleVendor:
		rec.AccountPayableID = entity.CounterpartyID
		rec.SourceAccountID = accountID
	case domain.RoleClient:
		rec.AccountReceivableID = entity.CounterpartyID
		rec.DestinationAccountID = accountID
	}
	return rec, nil
}

// BuildInternal constructs an internal operation record (deposit, payroll,
// fixed expenses, miscellaneous) that moves an account balance without a
// counterparty. Deposits credit the account; everything else debits it.
func BuildInternal(txnType domain.TransactionType, amount decimal.Decimal, accountID string, date time.Time, mode domain.PaymentMode, description, userID string) (domain.TransactionRecord, error) {
	if txnType.IsCounterpartyLinked() {
		return domain.TransactionRecord{}, fmt.Errorf("%w: %s requires a counterparty", apperrors.ErrValidation, txnType)
	}
	if !amount.IsPositive() {
		return domain.TransactionRecord{}, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}
	if accountID == "" {
		return domain.TransactionRecord{}, apperrors.ErrMissingAccount
	}

	rec := domain.TransactionRecord{
		TransactionID:    uuid.NewString(),
		Type:             txnType,
		Date:             date,
		TotalAmount:      amount.Round(2),
		PaidAmount:       amount.Round(2),
		RemainingPayment: decimal.Zero.Round(2),
		ModeOfPayment:    mode,
		Description:      description,
		UserID:           userID,
	}
	if txnType == domain.Deposit {
		rec.DestinationAccountID = accountID
	} else {
		rec.SourceAccountID = accountID
	}
	return rec, nil
}

// annotate appends the balance-snapshot audit note after any user-supplied
// description, separated by a newline.
func annotate(userDescription string, res Resolution, dir Direction) string {
	verb := "payment"
	if dir == Receipt {
		verb = "receipt"
	}
	note := fmt.Sprintf("Note: %s (%s) balance at time of %s is: %s",
		res.Entity.Name,
		res.Classification.Label(),
		verb,
		utils.FormatPKR(res.CurrentBalance),
	)
	if userDescription == "" {
		return note
	}
	return userDescription + "\n" + note
}
