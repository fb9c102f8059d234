package parser

import (
	"time"

	"github.com/jmhart/bankscan/internal/model"
)

// bankMarker pairs a lowercase institution search string with the canonical
// bank name it resolves to. Ordered; the first marker found in the text wins.
type bankMarker struct {
	Marker string
	Bank   string
}

var bankMarkers = []bankMarker{
	{"royal bank", model.BankRBC},
	{"rbc", model.BankRBC},
	{"td bank", model.BankTD},
	{"toronto-dominion", model.BankTD},
	{"toronto dominion", model.BankTD},
	{"bank of nova scotia", model.BankScotiabank},
	{"scotia", model.BankScotiabank},
}

// transactionKeywords mark the start of an individual transaction inside a
// date-anchored segment. Ordered most-specific first so that a longer phrase
// claims its span before any shorter phrase embedded in it can match.
var transactionKeywords = []string{
	"e-Transfer - Autodeposit",
	"e-Transfer received",
	"e-Transfer sent",
	"Contactless Interac purchase",
	"Interac purchase",
	"Online Banking transfer",
	"Online Banking payment",
	"Online transfer to",
	"Online transfer from",
	"Payroll Deposit",
	"Direct deposit",
	"ATM withdrawal",
	"Bill payment",
	"Loan payment",
	"Mortgage payment",
	"Pre-authorized payment",
	"Monthly fee",
	"Overdraft fee",
	"NSF fee",
	"Service charge",
	"Cheque",
	"Deposit",
	"Withdrawal",
	"Interest",
}

// debitKeywords force a negative (outflow) amount when any of them appears
// in the lowercased description. A description matching none of these is
// treated as a credit, which deliberately errs toward counting ambiguous
// entries as income.
var debitKeywords = []string{
	"fee",
	"withdrawal",
	"purchase",
	"transfer sent",
	"cheque",
	"atm",
	"interac",
	"online transfer to",
	"payment",
	"online banking transfer",
}

// monthsByAbbr resolves the 3-letter month tokens found next to date anchors.
var monthsByAbbr = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}
