package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransGenerator creates Snap transactions and returns their redirect URL.
type MidtransGenerator struct {
	client snap.Client
}

func NewMidtransGenerator(serverKey string, production bool) *MidtransGenerator {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &MidtransGenerator{}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGenerator) PaymentLink(ctx context.Context, order Order) (string, error) {
	items := make([]midtrans.ItemDetails, len(order.Items))
	for i, item := range order.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		items[i] = midtrans.ItemDetails{
			ID:    item.ID,
			Price: int64(item.Price),
			Qty:   int32(qty),
			Name:  item.Name,
		}
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.ID,
			GrossAmt: int64(order.Total),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Items:           &items,
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := g.client.CreateTransaction(snapReq)
	if midErr != nil {
		return "", fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return snapResp.RedirectURL, nil
}
