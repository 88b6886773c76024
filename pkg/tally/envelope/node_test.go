package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LowercasesNamesAndMergesAttributes(t *testing.T) {
	doc := `<ENVELOPE>
	<BODY><DATA><COLLECTION>
		<LEDGER NAME="Cash" RESERVEDNAME="">
			<PARENT TYPE="String">  Cash-in-Hand  </PARENT>
			<CLOSINGBALANCE TYPE="Amount">-1500.00</CLOSINGBALANCE>
		</LEDGER>
	</COLLECTION></DATA></BODY>
</ENVELOPE>`

	root, err := Parse([]byte(doc))
	require.NoError(t, err)

	ledgers := root.List("envelope", "body", "data", "collection", "ledger")
	require.Len(t, ledgers, 1)
	assert.Equal(t, "Cash", ledgers[0].Text("name"))
	assert.Equal(t, "Cash-in-Hand", ledgers[0].Text("parent"))
	assert.Equal(t, "-1500.00", ledgers[0].Text("closingbalance"))
}

func TestParse_RepeatedElementsBecomeLists(t *testing.T) {
	doc := `<ENVELOPE><COLLECTION>
		<LEDGER NAME="Cash"/>
		<LEDGER NAME="Bank"/>
	</COLLECTION></ENVELOPE>`

	root, err := Parse([]byte(doc))
	require.NoError(t, err)

	node := root.Path("envelope", "collection", "ledger")
	assert.True(t, node.IsList())
	items := node.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Cash", items[0].Text("name"))
	assert.Equal(t, "Bank", items[1].Text("name"))
}

func TestParse_StripsControlCharacterReferences(t *testing.T) {
	doc := `<ENVELOPE><NAME>Acme&#4; Traders</NAME><NOTE>A &#38; B</NOTE></ENVELOPE>`

	root, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", root.Path("envelope", "name").String())
	assert.Equal(t, "A & B", root.Path("envelope", "note").String())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("   "))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse([]byte("this is not xml"))
	assert.Error(t, err)
}

func TestNode_GetFlattensAcrossLists(t *testing.T) {
	root := New(map[string]any{
		"tallymessage": []any{
			map[string]any{"voucher": map[string]any{"vouchernumber": "1"}},
			map[string]any{"company": "skip"},
			map[string]any{"voucher": []any{
				map[string]any{"vouchernumber": "2"},
				map[string]any{"vouchernumber": "3"},
			}},
		},
	})

	vouchers := root.List("tallymessage", "voucher")
	require.Len(t, vouchers, 3)
	assert.Equal(t, "1", vouchers[0].Text("vouchernumber"))
	assert.Equal(t, "3", vouchers[2].Text("vouchernumber"))
}

func TestNode_GetMatchesCaseVariants(t *testing.T) {
	upper := New(map[string]any{"AMOUNT": "10"})
	lower := New(map[string]any{"amount": "20"})

	assert.Equal(t, "10", upper.Text("amount"))
	assert.Equal(t, "20", lower.Text("AMOUNT"))
}

func TestNode_ItemsCoercesScalars(t *testing.T) {
	assert.Empty(t, Node{}.Items())
	assert.Len(t, New(map[string]any{"a": "b"}).Items(), 1)
	assert.Len(t, New([]any{"a", "b"}).Items(), 2)
}

func TestNode_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		empty bool
	}{
		{name: "nil", value: nil, empty: true},
		{name: "blank string", value: "  ", empty: true},
		{name: "empty list", value: []any{}, empty: true},
		{name: "list of blanks", value: []any{"", nil}, empty: true},
		{name: "empty object", value: map[string]any{}, empty: true},
		{name: "zero string", value: "0", empty: false},
		{name: "object", value: map[string]any{"a": ""}, empty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, New(tt.value).IsEmpty())
		})
	}
}

func TestNode_FieldAndText(t *testing.T) {
	n := New(map[string]any{
		"name":      map[string]any{"type": "String"},
		"name.list": map[string]any{"name": "Sundry Debtors"},
		"parent":    map[string]any{"#text": " Primary ", "type": "String"},
	})

	assert.Equal(t, "Sundry Debtors", n.Text("name", "name.list/name"))
	assert.Equal(t, "Primary", n.Text("parent"))
	assert.False(t, n.Field("name").IsEmpty())
	assert.True(t, n.Field("missing", "also/missing").IsEmpty())
	assert.Equal(t, []string{"name", "name.list", "parent"}, n.Keys())
}
