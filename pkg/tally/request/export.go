package request

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

const tallyDateLayout = "20060102"

// DateRange bounds a report. Zero values are omitted and Tally falls back to the
// current period of the loaded company.
type DateRange struct {
	From time.Time
	To   time.Time
}

type VoucherQuery struct {
	Range DateRange
	Type  string
}

type variable struct {
	Name  string
	Value string
}

type formula struct {
	Name string
	Expr string
}

type collectionRequest struct {
	ID       string
	Type     string
	Fetch    []string
	Filters  []string
	Formulae []formula
	Company  string
	Vars     []variable
}

type reportRequest struct {
	ID      string
	Company string
	Vars    []variable
}

var funcs = template.FuncMap{
	"esc":  Escape,
	"join": strings.Join,
}

var collectionTemplate = template.Must(template.New("collection").Funcs(funcs).Parse(`<ENVELOPE>
 <HEADER>
  <VERSION>1</VERSION>
  <TALLYREQUEST>Export</TALLYREQUEST>
  <TYPE>Collection</TYPE>
  <ID>{{esc .ID}}</ID>
 </HEADER>
 <BODY>
  <DESC>
   <STATICVARIABLES>
    <SVEXPORTFORMAT>$$SysName:XML</SVEXPORTFORMAT>
{{- if .Company}}
    <SVCURRENTCOMPANY>{{esc .Company}}</SVCURRENTCOMPANY>
{{- end}}
{{- range .Vars}}
    <{{.Name}}>{{esc .Value}}</{{.Name}}>
{{- end}}
   </STATICVARIABLES>
   <TDL>
    <TDLMESSAGE>
     <COLLECTION NAME="{{esc .ID}}" ISMODIFY="No">
      <TYPE>{{esc .Type}}</TYPE>
      <FETCH>{{esc (join .Fetch ",")}}</FETCH>
{{- range .Filters}}
      <FILTER>{{esc .}}</FILTER>
{{- end}}
     </COLLECTION>
{{- range .Formulae}}
     <SYSTEM TYPE="Formulae" NAME="{{esc .Name}}">{{esc .Expr}}</SYSTEM>
{{- end}}
    </TDLMESSAGE>
   </TDL>
  </DESC>
 </BODY>
</ENVELOPE>
`))

var reportTemplate = template.Must(template.New("report").Funcs(funcs).Parse(`<ENVELOPE>
 <HEADER>
  <VERSION>1</VERSION>
  <TALLYREQUEST>Export</TALLYREQUEST>
  <TYPE>Data</TYPE>
  <ID>{{esc .ID}}</ID>
 </HEADER>
 <BODY>
  <DESC>
   <STATICVARIABLES>
    <SVEXPORTFORMAT>$$SysName:XML</SVEXPORTFORMAT>
{{- if .Company}}
    <SVCURRENTCOMPANY>{{esc .Company}}</SVCURRENTCOMPANY>
{{- end}}
{{- range .Vars}}
    <{{.Name}}>{{esc .Value}}</{{.Name}}>
{{- end}}
   </STATICVARIABLES>
  </DESC>
 </BODY>
</ENVELOPE>
`))

// Builder produces export envelopes scoped to one company. An empty company means
// whichever company is active in Tally.
type Builder struct {
	company string
}

func NewBuilder(company string) *Builder {
	return &Builder{company: company}
}

var (
	companyFetch = []string{"Name", "GUID", "StartingFrom", "BooksFrom"}
	ledgerFetch  = []string{"Name", "Parent", "OpeningBalance", "ClosingBalance"}
	stockFetch   = []string{"Name", "Parent", "BaseUnits", "OpeningBalance", "ClosingBalance", "ClosingValue", "ClosingRate"}
	voucherFetch = []string{
		"Date", "VoucherTypeName", "VoucherNumber", "PartyLedgerName", "Narration",
		"Amount", "MasterID", "GUID", "AllLedgerEntries", "AllInventoryEntries",
	}
)

func (b *Builder) Companies() string {
	// Company listing ignores SVCURRENTCOMPANY so every loaded company is returned.
	return renderCollection(collectionRequest{
		ID:    "CompanyList",
		Type:  "Company",
		Fetch: companyFetch,
	})
}

func (b *Builder) Ledgers() string {
	return renderCollection(collectionRequest{
		ID:      "LedgerList",
		Type:    "Ledger",
		Fetch:   ledgerFetch,
		Company: b.company,
	})
}

func (b *Builder) Ledger(name string) string {
	return renderCollection(collectionRequest{
		ID:       "LedgerDetail",
		Type:     "Ledger",
		Fetch:    ledgerFetch,
		Filters:  []string{"LedgerNameFilter"},
		Formulae: []formula{{Name: "LedgerNameFilter", Expr: nameEquals(name)}},
		Company:  b.company,
	})
}

func (b *Builder) LedgerVouchers(name string, r DateRange) string {
	vars := append(rangeVars(r), variable{Name: "LEDGERNAME", Value: name})
	return renderReport(reportRequest{
		ID:      "Ledger Vouchers",
		Company: b.company,
		Vars:    vars,
	})
}

func (b *Builder) Vouchers(q VoucherQuery) string {
	return renderCollection(collectionRequest{
		ID:      "VoucherList",
		Type:    "Voucher",
		Fetch:   voucherFetch,
		Company: b.company,
		Vars:    rangeVars(q.Range),
	})
}

// DayBook requests the exploded Day Book report, the fallback source when the voucher
// collection comes back empty.
func (b *Builder) DayBook(q VoucherQuery) string {
	vars := append(rangeVars(q.Range), variable{Name: "EXPLODEFLAG", Value: "Yes"})
	if q.Type != "" {
		vars = append(vars, variable{Name: "VOUCHERTYPENAME", Value: q.Type})
	}
	return renderReport(reportRequest{
		ID:      "Day Book",
		Company: b.company,
		Vars:    vars,
	})
}

func (b *Builder) StockItems() string {
	return renderCollection(collectionRequest{
		ID:      "StockItemList",
		Type:    "StockItem",
		Fetch:   stockFetch,
		Company: b.company,
	})
}

func (b *Builder) StockItem(name string) string {
	return renderCollection(collectionRequest{
		ID:       "StockItemDetail",
		Type:     "StockItem",
		Fetch:    stockFetch,
		Filters:  []string{"StockNameFilter"},
		Formulae: []formula{{Name: "StockNameFilter", Expr: nameEquals(name)}},
		Company:  b.company,
	})
}

func (b *Builder) Outstanding(r DateRange) string {
	return renderReport(reportRequest{
		ID:      "Bills Receivable",
		Company: b.company,
		Vars:    rangeVars(r),
	})
}

func (b *Builder) TrialBalance(r DateRange) string {
	vars := append(rangeVars(r), variable{Name: "EXPLODEFLAG", Value: "No"})
	return renderReport(reportRequest{
		ID:      "Trial Balance",
		Company: b.company,
		Vars:    vars,
	})
}

// nameEquals compares against a TDL string literal, where a quote is written twice.
func nameEquals(name string) string {
	return fmt.Sprintf(`$Name = "%s"`, strings.ReplaceAll(name, `"`, `""`))
}

func rangeVars(r DateRange) []variable {
	var vars []variable
	if !r.From.IsZero() {
		vars = append(vars, variable{Name: "SVFROMDATE", Value: r.From.Format(tallyDateLayout)})
	}
	if !r.To.IsZero() {
		vars = append(vars, variable{Name: "SVTODATE", Value: r.To.Format(tallyDateLayout)})
	}
	return vars
}

// The templates are static and only receive strings, so Execute cannot fail.
func renderCollection(req collectionRequest) string {
	var buf bytes.Buffer
	_ = collectionTemplate.Execute(&buf, req)
	return buf.String()
}

func renderReport(req reportRequest) string {
	var buf bytes.Buffer
	_ = reportTemplate.Execute(&buf, req)
	return buf.String()
}
