package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmhart/bankscan/internal/importer"
	"github.com/jmhart/bankscan/internal/model"
	"github.com/jmhart/bankscan/internal/service"
)

// transactionJSON is the wire shape for one transaction.
type transactionJSON struct {
	Date        string   `json:"date"`
	Month       string   `json:"month"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Balance     *float64 `json:"balance,omitempty"`
	Bank        string   `json:"bankName,omitempty"`
	AccountTail string   `json:"accountNumber,omitempty"`
}

// statementJSON is the wire shape for a parsed statement.
type statementJSON struct {
	BankName        string            `json:"bankName"`
	AccountTail     string            `json:"accountNumber"`
	StatementPeriod string            `json:"statementPeriod"`
	Transactions    []transactionJSON `json:"transactions"`
	Skips           []skipJSON        `json:"skippedSegments,omitempty"`
}

type skipJSON struct {
	Snippet string `json:"snippet"`
	Reason  string `json:"reason"`
}

type importResponseJSON struct {
	RunID      string        `json:"runId"`
	Saved      int           `json:"saved"`
	Duplicates int           `json:"duplicatesSkipped"`
	Statement  statementJSON `json:"statement"`
}

func toStatementJSON(stmt *model.ParsedStatement) statementJSON {
	out := statementJSON{
		BankName:        stmt.Metadata.BankName,
		AccountTail:     stmt.Metadata.AccountTail,
		StatementPeriod: stmt.Metadata.StatementPeriod,
		Transactions:    make([]transactionJSON, 0, len(stmt.Transactions)),
	}
	for _, txn := range stmt.Transactions {
		out.Transactions = append(out.Transactions, toTransactionJSON(txn))
	}
	for _, skip := range stmt.Skips {
		out.Skips = append(out.Skips, skipJSON{Snippet: skip.Snippet, Reason: skip.Reason})
	}
	return out
}

func toTransactionJSON(txn model.Transaction) transactionJSON {
	return transactionJSON{
		Date:        txn.Date.Format("2006-01-02"),
		Month:       txn.Month(),
		Description: txn.Description,
		Amount:      txn.Amount,
		Balance:     txn.Balance,
		Bank:        txn.Bank,
		AccountTail: txn.AccountTail,
	}
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handlePreview parses an uploaded statement and returns the result without
// persisting anything, so the user can check the reconstruction before
// committing it.
func (s *Server) handlePreview(c *fiber.Ctx) error {
	path, cleanup, err := s.receiveStatement(c)
	if err != nil {
		return err
	}
	defer cleanup()

	stmt, err := s.imp.Preview(path)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(toStatementJSON(stmt))
}

// handleImport parses an uploaded statement and persists it through the
// dedup gate. A statement with nothing extractable is a 422 so the client
// can offer manual entry.
func (s *Server) handleImport(c *fiber.Ctx) error {
	path, cleanup, err := s.receiveStatement(c)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := s.imp.ImportFile(c.Context(), path)
	if err != nil {
		if importer.IsNoTransactions(err) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "no transactions found in statement")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(importResponseJSON{
		RunID:      result.RunID,
		Saved:      result.Saved,
		Duplicates: result.Duplicates,
		Statement:  toStatementJSON(result.Statement),
	})
}

func (s *Server) handleTransactions(c *fiber.Ctx) error {
	filter := service.TransactionFilter{
		Month: c.Query("month"),
		Bank:  c.Query("bank"),
		Limit: c.QueryInt("limit"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
		filter.StartDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}
		filter.EndDate = &t
	}

	transactions, err := s.store.GetTransactions(c.Context(), filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]transactionJSON, 0, len(transactions))
	for _, txn := range transactions {
		out = append(out, toTransactionJSON(txn))
	}
	return c.JSON(fiber.Map{"transactions": out, "count": len(out)})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.store.MonthlyStats(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if stats == nil {
		stats = []service.MonthlySummary{}
	}
	return c.JSON(fiber.Map{"months": stats})
}
