package payment

import (
	"context"
	"fmt"
	"unicode/utf8"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

type SessionRequest struct {
	OrderID       string
	Amount        int64
	ItemID        string
	ItemName      string
	CustomerEmail string
}

type Session struct {
	Token       string
	RedirectURL string
}

// Gateway opens hosted checkout sessions at an external payment provider.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

type midtransGateway struct {
	client snap.Client
}

func NewMidtransGateway(serverKey string, production bool) Gateway {
	g := &midtransGateway{}
	if production {
		g.client.New(serverKey, midtrans.Production)
	} else {
		g.client.New(serverKey, midtrans.Sandbox)
	}
	return g
}

// NewGateway returns the configured gateway, or nil when no provider key is set.
func NewGateway() Gateway {
	key := config.Conf.GetString("MIDTRANS_SERVER_KEY")
	if key == "" {
		return nil
	}
	return NewMidtransGateway(key, config.Conf.GetBool("MIDTRANS_PRODUCTION"))
}

func (g *midtransGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("midtrans: invalid amount %d", req.Amount)
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Price: req.Amount,
				Qty:   1,
				Name:  truncate(req.ItemName, 50),
			},
		},
	}

	resp, mErr := g.client.CreateTransaction(snapReq)
	if mErr != nil {
		return nil, fmt.Errorf("midtrans: status %d: %s", mErr.StatusCode, mErr.Message)
	}
	return &Session{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
