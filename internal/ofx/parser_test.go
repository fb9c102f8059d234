package ofx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhart/bankscan/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
<FI>
<ORG>RBC
<FID>9999
</FI>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>CAD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234564417
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240601120000[0:GMT]
<DTEND>20240630120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240602120000[0:GMT]
<TRNAMT>-150.00
<FITID>2024060201
<NAME>e-Transfer sent TO JOHN DOE
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240605120000[0:GMT]
<TRNAMT>-4.95
<FITID>2024060501
<NAME>Monthly fee
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240615120000[0:GMT]
<TRNAMT>1200.00
<FITID>2024061501
<NAME>Direct deposit EMPLOYER
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>2335.60
<DTASOF>20240630120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	stmt, err := parser.Parse(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.NotNil(t, stmt)

	assert.Equal(t, model.BankRBC, stmt.Metadata.BankName)
	assert.Equal(t, "4417", stmt.Metadata.AccountTail)
	require.Len(t, stmt.Transactions, 3)

	first := stmt.Transactions[0]
	assert.Equal(t, "e-Transfer sent TO JOHN DOE", first.Description)
	assert.Equal(t, -150.00, first.Amount)
	assert.Equal(t, "2024-06-02", first.Date.Format("2006-01-02"))
	assert.Equal(t, "4417", first.AccountTail)
	assert.NotEmpty(t, first.Hash)

	// OFX signs are carried through unchanged.
	assert.Equal(t, -4.95, stmt.Transactions[1].Amount)
	assert.Equal(t, 1200.00, stmt.Transactions[2].Amount)
}

func TestParser_ParseInvalidData(t *testing.T) {
	parser := NewParser()

	_, err := parser.Parse(strings.NewReader("this is not OFX data"))
	assert.Error(t, err)
}

func TestParser_PreprocessFixesSeverityCase(t *testing.T) {
	parser := NewParser()

	fixed := parser.preprocess("<SEVERITY>Info</SEVERITY>")
	assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", fixed)
}

func TestBankNameFromOrg(t *testing.T) {
	tests := []struct {
		org  string
		want string
	}{
		{"RBC", model.BankRBC},
		{"Royal Bank of Canada", model.BankRBC},
		{"TD", model.BankTD},
		{"TD Canada Trust", model.BankTD},
		{"Scotiabank", model.BankScotiabank},
		{"First Credit Union", "First Credit Union"},
		// "td" inside another word is not TD.
		{"Acme Ltd", "Acme Ltd"},
		{"", model.BankUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bankNameFromOrg(tt.org), "org %q", tt.org)
	}
}

func TestAccountTail(t *testing.T) {
	assert.Equal(t, "4417", accountTail("1234564417"))
	assert.Equal(t, "4417", accountTail("12-345-644-17"))
	assert.Equal(t, "99", accountTail("99"))
	assert.Equal(t, "", accountTail(""))
}
