package widget

import (
	"context"
	"errors"
	"sync"

	"checkout-hub/internal/common/enum"
)

// ClientCapabilities is what the browser runtime reported about itself
// when the session was opened.
type ClientCapabilities struct {
	ApplePay             bool `json:"apple_pay"`
	GooglePay            bool `json:"google_pay"`
	CanMakeApplePayments bool `json:"can_make_apple_payments"`
}

// RemoteLibrary stands in for the payment runtime running in the
// client. Tokens produced there are fed back in through DeliverToken
// and DeliverWalletToken.
type RemoteLibrary struct {
	caps ClientCapabilities

	mu         sync.Mutex
	configured bool
	publicKey  string
	tokens     chan *Token
	wallets    map[enum.PaymentMethodEnum]*remoteWallet
}

func NewRemoteLibrary(caps ClientCapabilities) *RemoteLibrary {
	return &RemoteLibrary{
		caps:    caps,
		tokens:  make(chan *Token, 1),
		wallets: make(map[enum.PaymentMethodEnum]*remoteWallet),
	}
}

func (l *RemoteLibrary) Configure(publicKey string) error {
	if publicKey == "" {
		return errors.New("public key is empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.configured = true
	l.publicKey = publicKey
	return nil
}

func (l *RemoteLibrary) Elements() (Elements, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.configured {
		return nil, errors.New("library is not configured")
	}
	return remoteElements{}, nil
}

// TokenizeForm waits for the client to post the token it produced.
func (l *RemoteLibrary) TokenizeForm(ctx context.Context, _ BillingForm) (*Token, error) {
	select {
	case token := <-l.tokens:
		return token, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DeliverToken stages a client-produced card token for the next
// tokenization. A staged token that was never consumed is replaced.
func (l *RemoteLibrary) DeliverToken(token *Token) {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.tokens:
	default:
	}
	l.tokens <- token
}

// HasPendingToken reports whether a delivered card token is waiting to
// be consumed by tokenization.
func (l *RemoteLibrary) HasPendingToken() bool {
	return len(l.tokens) > 0
}

// DeliverWalletToken fires the token event of the matching wallet flow.
func (l *RemoteLibrary) DeliverWalletToken(method enum.PaymentMethodEnum, token *Token) error {
	l.mu.Lock()
	w, ok := l.wallets[method]
	l.mu.Unlock()

	if !ok {
		return errors.New("wallet flow is not active")
	}
	w.fireToken(token)
	return nil
}

func (l *RemoteLibrary) ApplePay(WalletConfig) (WalletPayment, error) {
	return l.newWallet(enum.APPLEPAY)
}

func (l *RemoteLibrary) GooglePay(WalletConfig) (WalletPayment, error) {
	return l.newWallet(enum.GOOGLEPAY)
}

func (l *RemoteLibrary) HasApplePay() bool  { return l.caps.ApplePay }
func (l *RemoteLibrary) HasGooglePay() bool { return l.caps.GooglePay }

// CanMakeApplePayments satisfies Platform from the reported
// capabilities.
func (l *RemoteLibrary) CanMakeApplePayments() bool { return l.caps.CanMakeApplePayments }

func (l *RemoteLibrary) newWallet(method enum.PaymentMethodEnum) (WalletPayment, error) {
	w := &remoteWallet{lib: l, method: method}

	l.mu.Lock()
	l.wallets[method] = w
	l.mu.Unlock()

	return w, nil
}

func (l *RemoteLibrary) dropWallet(method enum.PaymentMethodEnum) {
	l.mu.Lock()
	delete(l.wallets, method)
	l.mu.Unlock()
}

// remoteWallet mirrors a wallet flow whose real UI runs in the client.
// The client reported support up front, so the flow is ready as soon as
// it is subscribed.
type remoteWallet struct {
	lib    *RemoteLibrary
	method enum.PaymentMethodEnum

	mu     sync.Mutex
	events WalletEvents
}

func (w *remoteWallet) Subscribe(events WalletEvents) {
	w.mu.Lock()
	w.events = events
	ready := events.Ready
	w.mu.Unlock()

	if ready != nil {
		ready()
	}
}

func (w *remoteWallet) Destroy() error {
	w.lib.dropWallet(w.method)
	return nil
}

func (w *remoteWallet) fireToken(token *Token) {
	w.mu.Lock()
	handler := w.events.Token
	w.mu.Unlock()

	if handler != nil {
		handler(token)
	}
}

// remoteElements produces placeholder fields; the real inputs are
// attached by the client runtime.
type remoteElements struct{}

func (remoteElements) CardNumber() Field { return &remoteField{} }
func (remoteElements) CardMonth() Field  { return &remoteField{} }
func (remoteElements) CardYear() Field   { return &remoteField{} }
func (remoteElements) CardCVV() Field    { return &remoteField{} }

type remoteField struct {
	attached bool
}

func (f *remoteField) Attach(string) error {
	f.attached = true
	return nil
}

func (f *remoteField) Destroy() error {
	f.attached = false
	return nil
}
