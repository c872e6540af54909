package payment

type Kind string

const (
	KindCard       Kind = "card"
	KindUPI        Kind = "unified-payment-interface"
	KindWallet     Kind = "wallet"
	KindNetBanking Kind = "net-banking"
)

// Method is one selectable way to pay at checkout.
type Method struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// catalog is fixed process-wide configuration, never mutated at runtime.
var catalog = []Method{
	{ID: "card", Kind: KindCard, DisplayName: "Credit / Debit Card", Icon: "💳", Description: "Visa, Mastercard and RuPay cards"},
	{ID: "upi", Kind: KindUPI, DisplayName: "UPI", Icon: "📱", Description: "Google Pay, PhonePe, Paytm UPI"},
	{ID: "wallet", Kind: KindWallet, DisplayName: "Wallet", Icon: "👛", Description: "Paytm and Amazon Pay balance"},
	{ID: "netbanking", Kind: KindNetBanking, DisplayName: "Net Banking", Icon: "🏦", Description: "All major banks supported"},
}

// Methods returns the payment method catalog. The returned slice is a copy;
// callers may not mutate the catalog through it.
func Methods() []Method {
	out := make([]Method, len(catalog))
	copy(out, catalog)
	return out
}

// MethodByID looks up a catalog entry; ok is false for unknown ids.
func MethodByID(id string) (Method, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}
