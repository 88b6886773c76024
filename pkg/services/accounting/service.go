package accounting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/services/normalize"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
	"github.com/de-tools/tally-gateway/pkg/tally/request"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Transport is the subset of the Tally client the service needs.
type Transport interface {
	Send(ctx context.Context, operation, payload string) (envelope.Node, error)
	Import(ctx context.Context, operation, payload string) (envelope.Node, error)
}

type Service interface {
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	TestConnection(ctx context.Context) (domain.ConnectionStatus, error)
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
	GetLedger(ctx context.Context, name string) (domain.Ledger, error)
	LedgerVouchers(ctx context.Context, name string, period domain.Period) ([]domain.Voucher, error)
	ListVouchers(ctx context.Context, voucherType string, period domain.Period) ([]domain.Voucher, error)
	GetVoucher(ctx context.Context, key string) (domain.Voucher, error)
	ListStock(ctx context.Context) ([]domain.StockItem, error)
	GetStockItem(ctx context.Context, name string) (domain.StockItem, error)
	Outstanding(ctx context.Context, period domain.Period) ([]domain.OutstandingBill, error)
	TrialBalance(ctx context.Context, period domain.Period) ([]domain.TrialBalanceGroup, error)
	CreateSalesOrder(ctx context.Context, order domain.SalesOrder) (domain.ImportResult, error)
}

type Options struct {
	Company     string
	SalesLedger string
}

type tallyService struct {
	transport Transport
	builder   *request.Builder
	opts      Options
	now       func() time.Time

	// lists collapses concurrent unfiltered voucher fetches made by detail lookups.
	lists singleflight.Group
}

func NewService(transport Transport, opts Options) Service {
	return &tallyService{
		transport: transport,
		builder:   request.NewBuilder(opts.Company),
		opts:      opts,
		now:       time.Now,
	}
}

func (s *tallyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	root, err := s.export(ctx, "companies", s.builder.Companies())
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return normalize.Companies(root), nil
}

// TestConnection reports an unreachable or failing Tally as a status rather than an
// error. Only a cancelled request context is returned as an error.
func (s *tallyService) TestConnection(ctx context.Context) (domain.ConnectionStatus, error) {
	start := time.Now()
	companies, err := s.ListCompanies(ctx)
	status := domain.ConnectionStatus{Latency: time.Since(start)}
	if err != nil {
		if ctx.Err() != nil {
			return status, ctx.Err()
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("tally connection test failed")
		status.Message = err.Error()
		return status, nil
	}

	status.Connected = true
	status.Companies = len(companies)
	status.Message = fmt.Sprintf("connected to Tally, %d compan%s loaded", len(companies), plural(len(companies), "y", "ies"))
	return status, nil
}

func (s *tallyService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	root, err := s.export(ctx, "ledgers", s.builder.Ledgers())
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	return normalize.Ledgers(root), nil
}

func (s *tallyService) GetLedger(ctx context.Context, name string) (domain.Ledger, error) {
	root, err := s.export(ctx, "ledger", s.builder.Ledger(name))
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("failed to get ledger %q: %w", name, err)
	}
	ledger, ok := normalize.Ledger(root, name)
	if !ok {
		return domain.Ledger{}, &domain.NotFoundError{Resource: "ledger", Key: name}
	}
	return ledger, nil
}

func (s *tallyService) LedgerVouchers(ctx context.Context, name string, period domain.Period) ([]domain.Voucher, error) {
	root, err := s.export(ctx, "ledger_vouchers", s.builder.LedgerVouchers(name, dateRange(period)))
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers of ledger %q: %w", name, err)
	}
	return normalize.Vouchers(root), nil
}

func (s *tallyService) ListVouchers(ctx context.Context, voucherType string, period domain.Period) ([]domain.Voucher, error) {
	vouchers, err := s.fetchVouchers(ctx, request.VoucherQuery{Range: dateRange(period), Type: voucherType})
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return normalize.FilterVouchers(vouchers, voucherType), nil
}

// GetVoucher has no keyed export in Tally, so it scans the unfiltered voucher list.
// The shared fetch outlives the caller that started it; the transport timeout bounds it.
func (s *tallyService) GetVoucher(ctx context.Context, key string) (domain.Voucher, error) {
	v, err, shared := s.lists.Do("vouchers", func() (any, error) {
		return s.fetchVouchers(context.WithoutCancel(ctx), request.VoucherQuery{})
	})
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("failed to get voucher %q: %w", key, err)
	}
	zerolog.Ctx(ctx).Debug().Bool("shared", shared).Str("key", key).Msg("voucher list fetched")

	voucher, ok := normalize.FindVoucher(v.([]domain.Voucher), key)
	if !ok {
		return domain.Voucher{}, &domain.NotFoundError{Resource: "voucher", Key: key}
	}
	return voucher, nil
}

func (s *tallyService) ListStock(ctx context.Context) ([]domain.StockItem, error) {
	root, err := s.export(ctx, "stock", s.builder.StockItems())
	if err != nil {
		return nil, fmt.Errorf("failed to list stock items: %w", err)
	}
	return normalize.Stock(root), nil
}

func (s *tallyService) GetStockItem(ctx context.Context, name string) (domain.StockItem, error) {
	root, err := s.export(ctx, "stock_item", s.builder.StockItem(name))
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("failed to get stock item %q: %w", name, err)
	}
	item, ok := normalize.StockItem(root, name)
	if !ok {
		return domain.StockItem{}, &domain.NotFoundError{Resource: "stock item", Key: name}
	}
	return item, nil
}

func (s *tallyService) Outstanding(ctx context.Context, period domain.Period) ([]domain.OutstandingBill, error) {
	root, err := s.export(ctx, "outstanding", s.builder.Outstanding(dateRange(period)))
	if err != nil {
		return nil, fmt.Errorf("failed to get outstanding bills: %w", err)
	}
	return normalize.Outstanding(root), nil
}

func (s *tallyService) TrialBalance(ctx context.Context, period domain.Period) ([]domain.TrialBalanceGroup, error) {
	root, err := s.export(ctx, "trial_balance", s.builder.TrialBalance(dateRange(period)))
	if err != nil {
		return nil, fmt.Errorf("failed to get trial balance: %w", err)
	}
	return normalize.TrialBalance(root), nil
}

// CreateSalesOrder imports the order as a Sales Order voucher. Tally's verdict is
// returned as the result outcome; only transport failures are errors.
func (s *tallyService) CreateSalesOrder(ctx context.Context, order domain.SalesOrder) (domain.ImportResult, error) {
	if strings.TrimSpace(order.OrderID) == "" || strings.TrimSpace(order.PartyName) == "" || len(order.LineItems) == 0 {
		return domain.ImportResult{}, &domain.ValidationError{
			Message: "orderId, partyName and at least one line item are required",
		}
	}
	if order.OrderDate == "" {
		order.OrderDate = s.now().Format("20060102")
	}

	payload := s.builder.SalesOrder(salesOrderRequest(order), request.ImportOptions{
		Company:     s.opts.Company,
		SalesLedger: s.opts.SalesLedger,
	})
	root, err := s.transport.Import(ctx, "sales_order", payload)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("failed to import sales order %q: %w", order.OrderID, err)
	}

	result := normalize.ImportResult(root, order)
	zerolog.Ctx(ctx).Info().
		Str("order_id", order.OrderID).
		Str("outcome", string(result.Outcome)).
		Str("voucher_id", result.VoucherID).
		Msg("sales order imported")
	return result, nil
}

// fetchVouchers reads the voucher collection and falls back to the Day Book report
// when the collection yields nothing, which some Tally releases do for TDL exports.
func (s *tallyService) fetchVouchers(ctx context.Context, q request.VoucherQuery) ([]domain.Voucher, error) {
	root, err := s.export(ctx, "vouchers", s.builder.Vouchers(q))
	if err != nil {
		return nil, err
	}
	if vouchers := normalize.Vouchers(root); len(vouchers) > 0 {
		return vouchers, nil
	}

	root, err = s.export(ctx, "day_book", s.builder.DayBook(q))
	if err != nil {
		return nil, err
	}
	return normalize.Vouchers(root), nil
}

// export sends a read request and turns an embedded Tally error into a RemoteError.
func (s *tallyService) export(ctx context.Context, operation, payload string) (envelope.Node, error) {
	root, err := s.transport.Send(ctx, operation, payload)
	if err != nil {
		return envelope.Node{}, err
	}
	if err := normalize.RemoteFault(root); err != nil {
		return envelope.Node{}, err
	}
	return root, nil
}

func dateRange(p domain.Period) request.DateRange {
	return request.DateRange{From: p.From, To: p.To}
}

func salesOrderRequest(order domain.SalesOrder) request.SalesOrder {
	lines := make([]request.SalesOrderLine, 0, len(order.LineItems))
	for _, l := range order.LineItems {
		lines = append(lines, request.SalesOrderLine{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Unit:        l.Unit,
		})
	}
	return request.SalesOrder{
		OrderID:   order.OrderID,
		PartyName: order.PartyName,
		OrderDate: order.OrderDate,
		Narration: order.Narration,
		LineItems: lines,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
