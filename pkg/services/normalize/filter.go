package normalize

import (
	"regexp"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
)

// quickBook matches the quick-book sales voucher types some companies keep next to
// the regular Sales type ("QB Sales", "Quick Book Sales", "QuickBook Sales").
var quickBook = regexp.MustCompile(`(?i)^\s*(qb|quick\s*book)\b`)

// FilterVouchers keeps vouchers whose type matches voucherType case-insensitively.
// An empty voucherType keeps everything. Quick-book types are dropped unless they
// were asked for, and "sales" only matches exactly so that it never picks them up.
func FilterVouchers(vouchers []domain.Voucher, voucherType string) []domain.Voucher {
	want := strings.TrimSpace(voucherType)
	if want == "" {
		return vouchers
	}

	wantQB := quickBook.MatchString(want)
	out := make([]domain.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if quickBook.MatchString(v.Type) && !wantQB {
			continue
		}
		if matchesType(v.Type, want) {
			out = append(out, v)
		}
	}
	return out
}

func matchesType(have, want string) bool {
	have = strings.TrimSpace(have)
	if strings.EqualFold(want, "sales") {
		return strings.EqualFold(have, want)
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}
