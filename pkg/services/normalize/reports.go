package normalize

import (
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
	"github.com/shopspring/decimal"
)

var billPaths = []Accessor{
	At("envelope", "body", "data", "collection", "bill"),
	At("envelope", "collection", "bill"),
	At("envelope", "bill"),
	// Bills Receivable display report.
	Columns([]string{"envelope"}, "billfixed", "billcl", "billdue", "billoverdue"),
}

var (
	billRefAliases     = []string{"billfixed/billref", "billref", "name", "reference"}
	billPartyAliases   = []string{"billfixed/billparty", "billparty", "partyname", "parent", "party"}
	billDateAliases    = []string{"billfixed/billdate", "billdate", "date"}
	billDueAliases     = []string{"billdue", "billduedate", "duedate", "billcreditperiod"}
	billAmountAliases  = []string{"billcl", "closingbalance", "amount", "billamount", "openingbalance"}
	billOverdueAliases = []string{"billoverdue", "overduedays", "overdue"}
)

func Outstanding(root envelope.Node) []domain.OutstandingBill {
	raw := records(root, billPaths)
	out := make([]domain.OutstandingBill, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.OutstandingBill{
			BillRef:     r.Text(billRefAliases...),
			Party:       r.Text(billPartyAliases...),
			Date:        FormatDate(r.Text(billDateAliases...)),
			DueDate:     FormatDate(r.Text(billDueAliases...)),
			Amount:      absAmount(r, billAmountAliases...),
			OverdueDays: parseInt(r.Text(billOverdueAliases...)),
		})
	}
	return out
}

var groupPaths = []Accessor{
	At("envelope", "body", "data", "collection", "group"),
	At("envelope", "collection", "group"),
	At("envelope", "group"),
	// Trial Balance display report.
	Columns([]string{"envelope"}, "dspaccname", "dspaccinfo"),
}

var (
	groupNameAliases   = []string{"dspaccname/dspdispname", "name", "name.list/name"}
	groupDebitAliases  = []string{"dspaccinfo/dspcldramt/dspcldramta", "debit", "debitamount"}
	groupCreditAliases = []string{"dspaccinfo/dspclcramt/dspclcramta", "credit", "creditamount"}
)

// TrialBalance reads debit and credit columns when the report has them. Collection
// exports only carry a signed closing balance, where negative is a debit.
func TrialBalance(root envelope.Node) []domain.TrialBalanceGroup {
	raw := records(root, groupPaths)
	out := make([]domain.TrialBalanceGroup, 0, len(raw))
	for _, r := range raw {
		g := domain.TrialBalanceGroup{
			Name:   r.Text(groupNameAliases...),
			Debit:  absAmount(r, groupDebitAliases...),
			Credit: absAmount(r, groupCreditAliases...),
		}
		closing := signedAmount(r, closingAliases...)
		if closing.IsZero() {
			closing = g.Credit.Sub(g.Debit)
		}
		g.ClosingBalance = closing
		if g.Debit.IsZero() && g.Credit.IsZero() {
			g.Debit, g.Credit = split(closing)
		}
		out = append(out, g)
	}
	return out
}

func split(balance decimal.Decimal) (debit, credit decimal.Decimal) {
	if balance.IsNegative() {
		return balance.Abs(), decimal.Zero
	}
	return decimal.Zero, balance
}
