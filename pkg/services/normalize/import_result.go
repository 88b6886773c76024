package normalize

import (
	"fmt"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
)

var importResultPaths = []Accessor{
	At("envelope", "body", "data", "importresult"),
	At("envelope", "body", "importresult"),
	At("envelope", "importresult"),
	At("response"),
}

var cmpInfoPaths = []Accessor{
	At("envelope", "body", "data", "cmpinfo"),
	At("envelope", "body", "desc", "cmpinfo"),
	At("envelope", "body", "data", "importresult", "cmpinfo"),
	At("envelope", "cmpinfo"),
	At("response", "cmpinfo"),
}

// ImportResult classifies Tally's answer to a voucher import. Counters are checked in
// the order created, altered, exceptions, errors; a LINEERROR without counters is an
// error and a reply with neither is unrecognized.
func ImportResult(root envelope.Node, order domain.SalesOrder) domain.ImportResult {
	result := domain.ImportResult{OrderID: order.OrderID, Outcome: domain.ImportUnrecognized}

	rec := First(root, importResultPaths...)
	lineError := firstNonEmpty(First(root, faultPaths...).String(), rec.Text("lineerror"))
	if rec.IsEmpty() && lineError == "" {
		result.Message = "unrecognized response from Tally"
		return result
	}
	result.VoucherID = rec.Text("lastvchid", "lastmid", "vchid")

	switch {
	case parseInt(rec.Text("created")) > 0:
		result.Outcome = domain.ImportCreated
		result.Message = fmt.Sprintf("sales order %s created", order.OrderID)
	case parseInt(rec.Text("altered")) > 0:
		result.Outcome = domain.ImportAltered
		result.Message = fmt.Sprintf("sales order %s altered", order.OrderID)
	case parseInt(rec.Text("exceptions")) > 0:
		result.Outcome = domain.ImportException
		result.Message = exceptionMessage(First(root, cmpInfoPaths...), order, lineError)
	case parseInt(rec.Text("errors")) > 0 || lineError != "":
		result.Outcome = domain.ImportError
		result.Message = firstNonEmpty(lineError, "Tally rejected the sales order")
	default:
		result.Message = "unrecognized response from Tally"
	}
	return result
}

// exceptionMessage explains an import exception from the CMPINFO counters, which
// report how many masters of each kind the company holds. A zero count means the
// referenced master could not have been resolved.
func exceptionMessage(info envelope.Node, order domain.SalesOrder, lineError string) string {
	var reasons []string
	if isZeroCount(info, "ledger") {
		reasons = append(reasons, fmt.Sprintf("party ledger %q not found in Tally", order.PartyName))
	}
	if isZeroCount(info, "stockitem") {
		names := make([]string, 0, len(order.LineItems))
		for _, l := range order.LineItems {
			names = append(names, l.ProductName)
		}
		reasons = append(reasons, fmt.Sprintf("stock item(s) %s not found in Tally", strings.Join(names, ", ")))
	}
	if isZeroCount(info, "vouchertype") {
		reasons = append(reasons, `voucher type "Sales Order" not found in Tally`)
	}
	if lineError != "" {
		reasons = append(reasons, lineError)
	}
	if len(reasons) == 0 {
		return "Tally raised an exception while importing the sales order"
	}
	return strings.Join(reasons, "; ")
}

func isZeroCount(info envelope.Node, key string) bool {
	v := info.Text(key)
	return v != "" && ParseAmount(v).IsZero()
}
