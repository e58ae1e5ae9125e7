package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway wraps the Razorpay client. Amounts cross this boundary in paise.
type Gateway struct {
	client *razorpay.Client
	secret string
}

func NewGateway(keyID, keySecret string) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

// CreateOrder registers a payment order with Razorpay and returns its id.
func (g *Gateway) CreateOrder(amountPaise int, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order creation failed: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return id, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay sends after a
// successful checkout.
func (g *Gateway) VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool {
	message := razorpayOrderID + "|" + razorpayPaymentID
	h := hmac.New(sha256.New, []byte(g.secret))
	h.Write([]byte(message))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
