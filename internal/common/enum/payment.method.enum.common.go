package enum

type PaymentMethodEnum string

const (
	CARD      PaymentMethodEnum = "card"
	APPLEPAY  PaymentMethodEnum = "applepay"
	GOOGLEPAY PaymentMethodEnum = "googlepay"
)

func (e PaymentMethodEnum) ToString() string {
	switch e {
	case CARD:
		return "card"
	case APPLEPAY:
		return "applepay"
	case GOOGLEPAY:
		return "googlepay"
	}
	return ""
}

func (e PaymentMethodEnum) IsValid() bool {
	switch e {
	case CARD, APPLEPAY, GOOGLEPAY:
		return true
	}
	return false
}

// IsWallet reports whether the method is a wallet flow, where the token is
// produced by the platform button rather than by form tokenization.
func (e PaymentMethodEnum) IsWallet() bool {
	return e == APPLEPAY || e == GOOGLEPAY
}
