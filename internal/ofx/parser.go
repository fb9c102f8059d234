// Package ofx parses OFX/QFX statement downloads into the same
// ParsedStatement the text pipeline produces. Banks that offer OFX export
// skip the heuristic PDF parsing entirely; OFX carries structured dates,
// signed amounts, and real statement years.
package ofx

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/jmhart/bankscan/internal/common"
	"github.com/jmhart/bankscan/internal/model"
)

// Parser implements OFX/QFX statement parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes common formatting issues in bank-exported OFX files.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style OFX sometimes drops the closing angle bracket on a tag
	// that ends a line
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse reads an OFX/QFX document and returns a ParsedStatement. Bank and
// credit card statements inside one document are merged into a single
// transaction list in document order.
func (p *Parser) Parse(reader io.Reader) (*model.ParsedStatement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &model.ParsedStatement{
		Metadata: model.StatementMetadata{
			BankName: bankNameFromOrg(string(resp.Signon.Org)),
		},
	}

	for _, msg := range resp.Bank {
		if bank, ok := msg.(*ofxgo.StatementResponse); ok && bank.BankTranList != nil {
			tail := accountTail(string(bank.BankAcctFrom.AcctID))
			if stmt.Metadata.AccountTail == "" {
				stmt.Metadata.AccountTail = tail
			}
			for _, ofxTx := range bank.BankTranList.Transactions {
				stmt.Transactions = append(stmt.Transactions, p.convert(ofxTx, stmt.Metadata.BankName, tail))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if cc, ok := msg.(*ofxgo.CCStatementResponse); ok && cc.BankTranList != nil {
			tail := accountTail(string(cc.CCAcctFrom.AcctID))
			if stmt.Metadata.AccountTail == "" {
				stmt.Metadata.AccountTail = tail
			}
			for _, ofxTx := range cc.BankTranList.Transactions {
				stmt.Transactions = append(stmt.Transactions, p.convert(ofxTx, stmt.Metadata.BankName, tail))
			}
		}
	}

	common.LogDebug("parsed OFX statement", common.Fields{
		"bank":         stmt.Metadata.BankName,
		"transactions": len(stmt.Transactions),
	})

	return stmt, nil
}

// convert maps one OFX transaction to the domain model. OFX already signs
// amounts the way we do: negative for debits, positive for credits.
func (p *Parser) convert(ofxTx ofxgo.Transaction, bank, tail string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	txn := model.Transaction{
		Date:        ofxTx.DtPosted.Time,
		Description: describeTransaction(ofxTx),
		Amount:      amount,
		Bank:        bank,
		AccountTail: tail,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}

// describeTransaction builds a description from the OFX fields, preferring
// the payee name and falling back through NAME and MEMO.
func describeTransaction(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" {
		return strings.TrimSpace(string(tx.Memo))
	}
	if tx.Memo != "" && !strings.EqualFold(name, string(tx.Memo)) {
		return name + " " + strings.TrimSpace(string(tx.Memo))
	}
	return name
}

// tdTokenRe matches "td" only as a standalone word so org strings like
// "Acme Ltd" are not classified as TD.
var tdTokenRe = regexp.MustCompile(`(?i)\btd\b`)

// bankNameFromOrg maps the OFX signon organization to a canonical bank
// name, falling back to the raw org string so unknown institutions stay
// identifiable.
func bankNameFromOrg(org string) string {
	lower := strings.ToLower(org)
	switch {
	case strings.Contains(lower, "rbc"), strings.Contains(lower, "royal bank"):
		return model.BankRBC
	case tdTokenRe.MatchString(org), strings.Contains(lower, "toronto dominion"):
		return model.BankTD
	case strings.Contains(lower, "scotia"):
		return model.BankScotiabank
	case org != "":
		return org
	default:
		return model.BankUnknown
	}
}

// accountTail keeps the last 4 digits of an account ID.
func accountTail(acctID string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, acctID)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
