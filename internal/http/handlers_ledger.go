package http

import (
	"net/http"

	"lifeos/internal/core"
)

type balanceResponse struct {
	Balance   core.Money `json:"balance"`
	Formatted string     `json:"formatted"`
	Negative  bool       `json:"negative"`
}

type transactionResponse struct {
	Transaction core.Transaction `json:"transaction"`
	Balance     balanceResponse  `json:"balance"`
}

func (s *Server) balance() balanceResponse {
	b, neg := s.session.Balance()
	return balanceResponse{Balance: b, Formatted: b.String(), Negative: neg}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	NewJSONResponse().Body(map[string]any{
		"transactions": s.session.Transactions(limit),
	}).Write(w)
}

// handleCreateTransaction accepts {amount, category, type}. The amount may be
// a JSON number or a string with either decimal separator.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		DomainError(err).Write(w)
		return
	}
	typ := core.TransactionType(p.Get("type"))

	tx, err := s.session.AddTransaction(r.Context(), amount, p.Get("category"), typ)
	if err != nil {
		DomainError(err).Write(w)
		return
	}
	s.invalidate(r.Context())
	NewJSONResponse().Status(http.StatusCreated).
		Body(transactionResponse{Transaction: tx, Balance: s.balance()}).Write(w)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.balance()).Write(w)
}
