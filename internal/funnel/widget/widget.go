package widget

import "context"

// Token is the opaque payment token produced by the hosted library. Only
// the identifier travels to the checkout backend.
type Token struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// BillingForm carries the non-sensitive fields submitted alongside the
// hosted card fields during tokenization.
type BillingForm struct {
	FirstName string
	LastName  string
}

// WalletConfig configures a wallet payment flow before it is presented.
type WalletConfig struct {
	Country  string
	Currency string
	Total    string
	Label    string
}

// WalletEvents binds callbacks to the wallet flow lifecycle. Any handler
// may be nil.
type WalletEvents struct {
	Ready       func()
	Token       func(*Token)
	Error       func(error)
	Unavailable func()
}

// Library is the capability surface of the third-party payment runtime.
// Implementations wrap whatever form the vendor ships it in.
type Library interface {
	Configure(publicKey string) error
	Elements() (Elements, error)
	TokenizeForm(ctx context.Context, form BillingForm) (*Token, error)
	ApplePay(cfg WalletConfig) (WalletPayment, error)
	GooglePay(cfg WalletConfig) (WalletPayment, error)
	HasApplePay() bool
	HasGooglePay() bool
}

// Elements is a factory for hosted card input fields. A fresh group is
// created on every card mount.
type Elements interface {
	CardNumber() Field
	CardMonth() Field
	CardYear() Field
	CardCVV() Field
}

// Field is a single hosted input attached to a container in the page.
type Field interface {
	Attach(target string) error
	Destroy() error
}

// WalletPayment is an in-flight wallet flow. Subscribe must be called
// before the flow emits its first event.
type WalletPayment interface {
	Subscribe(events WalletEvents)
	Destroy() error
}

// Wallet implementations expose at most one of these presentation
// hooks. They are probed in the order attach, mount, render.
type (
	Attacher interface{ AttachButton(target string) error }
	Mounter  interface{ MountButton(target string) error }
	Renderer interface{ RenderButton(target string) error }
)

// DOM answers whether a container the widgets need is present in the
// page right now.
type DOM interface {
	Has(id string) bool
}

// StaticDOM is a fixed set of container ids, used when the page
// composition is known up front.
type StaticDOM map[string]struct{}

func (d StaticDOM) Has(id string) bool {
	_, ok := d[id]
	return ok
}

// NewStaticDOM builds a StaticDOM from the given container ids.
func NewStaticDOM(ids ...string) StaticDOM {
	d := make(StaticDOM, len(ids))
	for _, id := range ids {
		d[id] = struct{}{}
	}
	return d
}
