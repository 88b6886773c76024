package accounting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/client"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Send(ctx context.Context, operation, payload string) (envelope.Node, error) {
	args := m.Called(ctx, operation, payload)
	return args.Get(0).(envelope.Node), args.Error(1)
}

func (m *mockTransport) Import(ctx context.Context, operation, payload string) (envelope.Node, error) {
	args := m.Called(ctx, operation, payload)
	return args.Get(0).(envelope.Node), args.Error(1)
}

func xmlNode(t *testing.T, doc string) envelope.Node {
	t.Helper()
	n, err := envelope.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func containing(s string) any {
	return mock.MatchedBy(func(payload string) bool { return strings.Contains(payload, s) })
}

const ledgersReply = `<ENVELOPE><BODY><DATA><COLLECTION>
	<LEDGER NAME="Acme"><PARENT>Sundry Debtors</PARENT><CLOSINGBALANCE>-100</CLOSINGBALANCE></LEDGER>
	<LEDGER NAME="Cash"><PARENT>Cash-in-Hand</PARENT></LEDGER>
</COLLECTION></DATA></BODY></ENVELOPE>`

const vouchersReply = `<ENVELOPE><BODY><DATA><COLLECTION>
	<VOUCHER VCHKEY="k-1"><VOUCHERTYPENAME>Sales</VOUCHERTYPENAME><AMOUNT>10</AMOUNT></VOUCHER>
	<VOUCHER VCHKEY="k-2"><VOUCHERTYPENAME>QB Sales</VOUCHERTYPENAME><AMOUNT>20</AMOUNT></VOUCHER>
	<VOUCHER VCHKEY="k-3"><VOUCHERTYPENAME>Receipt</VOUCHERTYPENAME><AMOUNT>30</AMOUNT></VOUCHER>
</COLLECTION></DATA></BODY></ENVELOPE>`

const emptyReply = `<ENVELOPE><HEADER><VERSION>1</VERSION></HEADER><BODY><DATA></DATA></BODY></ENVELOPE>`

func TestService_ListLedgers(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Send", mock.Anything, "ledgers", containing("<TYPE>Ledger</TYPE>")).
		Return(xmlNode(t, ledgersReply), nil)

	svc := NewService(transport, Options{Company: "Demo"})
	ledgers, err := svc.ListLedgers(context.Background())

	require.NoError(t, err)
	require.Len(t, ledgers, 2)
	assert.Equal(t, "Acme", ledgers[0].Name)
	assert.True(t, decimal.NewFromInt(-100).Equal(ledgers[0].ClosingBalance))
	transport.AssertExpectations(t)
}

func TestService_GetLedger(t *testing.T) {
	tests := []struct {
		name     string
		ledger   string
		notFound bool
	}{
		{name: "found", ledger: "cash"},
		{name: "missing", ledger: "Bank", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(mockTransport)
			transport.On("Send", mock.Anything, "ledger", containing("LedgerNameFilter")).
				Return(xmlNode(t, ledgersReply), nil)

			ledger, err := NewService(transport, Options{}).GetLedger(context.Background(), tt.ledger)
			if tt.notFound {
				var nf *domain.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "Bank", nf.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Cash", ledger.Name)
			assert.NotNil(t, ledger.Vouchers)
		})
	}
}

func TestService_RemoteFaultIsError(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Send", mock.Anything, "stock", mock.Anything).
		Return(xmlNode(t, `<ENVELOPE><BODY><DATA><LINEERROR>Could not set 'SVCurrentCompany' to 'Nope'</LINEERROR></DATA></BODY></ENVELOPE>`), nil)

	_, err := NewService(transport, Options{Company: "Nope"}).ListStock(context.Background())

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Contains(t, remote.Message, "SVCurrentCompany")
}

func TestService_TransportErrorsAreWrapped(t *testing.T) {
	connErr := &client.ConnectionError{Addr: "localhost:9000", Err: errors.New("refused")}
	transport := new(mockTransport)
	transport.On("Send", mock.Anything, "trial_balance", mock.Anything).Return(envelope.Node{}, connErr)

	_, err := NewService(transport, Options{}).TrialBalance(context.Background(), domain.Period{})

	var target *client.ConnectionError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "trial balance")
}

func TestService_ListVouchers(t *testing.T) {
	period := domain.Period{
		From: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}

	t.Run("collection filtered by type", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Send", mock.Anything, "vouchers", containing("<SVFROMDATE>20250401</SVFROMDATE>")).
			Return(xmlNode(t, vouchersReply), nil)

		vouchers, err := NewService(transport, Options{}).ListVouchers(context.Background(), "sales", period)

		require.NoError(t, err)
		require.Len(t, vouchers, 1)
		assert.Equal(t, "k-1", vouchers[0].Key)
		transport.AssertNotCalled(t, "Send", mock.Anything, "day_book", mock.Anything)
	})

	t.Run("falls back to day book", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Send", mock.Anything, "vouchers", mock.Anything).Return(xmlNode(t, emptyReply), nil)
		transport.On("Send", mock.Anything, "day_book", containing("<VOUCHERTYPENAME>Receipt</VOUCHERTYPENAME>")).
			Return(xmlNode(t, vouchersReply), nil)

		vouchers, err := NewService(transport, Options{}).ListVouchers(context.Background(), "Receipt", period)

		require.NoError(t, err)
		require.Len(t, vouchers, 1)
		assert.Equal(t, "k-3", vouchers[0].Key)
		transport.AssertExpectations(t)
	})

	t.Run("nothing anywhere", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(xmlNode(t, emptyReply), nil)

		vouchers, err := NewService(transport, Options{}).ListVouchers(context.Background(), "", domain.Period{})

		require.NoError(t, err)
		assert.NotNil(t, vouchers)
		assert.Empty(t, vouchers)
	})
}

func TestService_GetVoucher(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Send", mock.Anything, "vouchers", mock.Anything).Return(xmlNode(t, vouchersReply), nil)
	svc := NewService(transport, Options{})

	v, err := svc.GetVoucher(context.Background(), "k-2")
	require.NoError(t, err)
	assert.Equal(t, "QB Sales", v.Type)

	_, err = svc.GetVoucher(context.Background(), "k-9")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "voucher", nf.Resource)
}

func TestService_GetVoucherSharesInFlightFetch(t *testing.T) {
	release := make(chan time.Time)
	transport := new(mockTransport)
	transport.On("Send", mock.Anything, "vouchers", mock.Anything).
		WaitUntil(release).
		Return(xmlNode(t, vouchersReply), nil)
	svc := NewService(transport, Options{})

	const callers = 5
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			_, err := svc.GetVoucher(context.Background(), "k-1")
			assert.NoError(t, err)
		}()
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	calls := 0
	for _, c := range transport.Calls {
		if c.Method == "Send" {
			calls++
		}
	}
	assert.Less(t, calls, callers)
}

func TestService_TestConnection(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Send", mock.Anything, "companies", mock.Anything).
			Return(xmlNode(t, `<ENVELOPE><BODY><DATA><COLLECTION><COMPANY NAME="Demo"/></COLLECTION></DATA></BODY></ENVELOPE>`), nil)

		status, err := NewService(transport, Options{}).TestConnection(context.Background())

		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, 1, status.Companies)
		assert.Contains(t, status.Message, "1 company")
	})

	t.Run("unreachable", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Send", mock.Anything, "companies", mock.Anything).
			Return(envelope.Node{}, &client.ConnectionError{Addr: "localhost:9000", Err: errors.New("refused")})

		status, err := NewService(transport, Options{}).TestConnection(context.Background())

		require.NoError(t, err)
		assert.False(t, status.Connected)
		assert.Contains(t, status.Message, "localhost:9000")
	})
}

func TestService_CreateSalesOrder(t *testing.T) {
	order := domain.SalesOrder{
		OrderID:   "SO1",
		PartyName: "Acme",
		LineItems: []domain.SalesOrderLine{{
			ProductName: "Widget",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(100),
		}},
	}

	t.Run("created", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Import", mock.Anything, "sales_order", mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "<DATE>20250105</DATE>") &&
				strings.Contains(p, "<LEDGERNAME>Sales Account</LEDGERNAME>") &&
				strings.Contains(p, "<SVCURRENTCOMPANY>Demo</SVCURRENTCOMPANY>")
		})).Return(xmlNode(t, `<ENVELOPE><BODY><DATA><IMPORTRESULT><CREATED>1</CREATED><LASTVCHID>9</LASTVCHID></IMPORTRESULT></DATA></BODY></ENVELOPE>`), nil)

		svc := NewService(transport, Options{Company: "Demo", SalesLedger: "Sales Account"}).(*tallyService)
		svc.now = func() time.Time { return time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC) }

		result, err := svc.CreateSalesOrder(context.Background(), order)

		require.NoError(t, err)
		assert.Equal(t, domain.ImportCreated, result.Outcome)
		assert.Equal(t, "9", result.VoucherID)
		transport.AssertExpectations(t)
	})

	t.Run("business error is an outcome", func(t *testing.T) {
		transport := new(mockTransport)
		transport.On("Import", mock.Anything, "sales_order", mock.Anything).
			Return(xmlNode(t, `<ENVELOPE><BODY><DATA><LINEERROR>Voucher totals do not match!</LINEERROR></DATA></BODY></ENVELOPE>`), nil)

		result, err := NewService(transport, Options{}).CreateSalesOrder(context.Background(), order)

		require.NoError(t, err)
		assert.Equal(t, domain.ImportError, result.Outcome)
		assert.Equal(t, "Voucher totals do not match!", result.Message)
	})

	t.Run("invalid order never reaches Tally", func(t *testing.T) {
		transport := new(mockTransport)

		_, err := NewService(transport, Options{}).CreateSalesOrder(context.Background(), domain.SalesOrder{OrderID: "SO2"})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		transport.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
	})
}
