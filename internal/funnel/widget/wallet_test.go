package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"checkout-hub/internal/common/enum"
)

func walletConfig() WalletConfig {
	return WalletConfig{Country: "BR", Currency: "USD", Total: "37", Label: "Plan"}
}

func TestWalletButtonAttachPreferred(t *testing.T) {
	wallet := &attachableWallet{}
	lib := &fakeLibrary{applePay: wallet}
	dom := NewStaticDOM(TargetApplePay)

	w, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), dom, WalletHooks{})
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Ready() })

	assert.Equal(t, "#apple-pay-button", wallet.attachedTo)
	assert.True(t, w.Presented())
}

func TestWalletButtonMountBeatsRender(t *testing.T) {
	wallet := &mountableWallet{}
	lib := &fakeLibrary{googlePay: wallet}
	dom := NewStaticDOM(TargetGooglePay)

	w, err := NewWalletButton(lib, enum.GOOGLEPAY, walletConfig(), dom, WalletHooks{})
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Ready() })

	assert.Equal(t, "#google-pay-button", wallet.mountedTo)
	assert.Empty(t, wallet.renderedTo)
	assert.True(t, w.Presented())
}

func TestWalletButtonNoHookStillPresents(t *testing.T) {
	wallet := &fakeWallet{}
	lib := &fakeLibrary{applePay: wallet}

	w, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), NewStaticDOM(TargetApplePay), WalletHooks{})
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Ready() })
	assert.True(t, w.Presented())
}

func TestWalletButtonMissingContainerSkipsPresentation(t *testing.T) {
	wallet := &attachableWallet{}
	lib := &fakeLibrary{applePay: wallet}

	w, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), NewStaticDOM(), WalletHooks{})
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Ready() })

	assert.Empty(t, wallet.attachedTo)
	assert.False(t, w.Presented())
}

func TestWalletButtonAttachFailureReportsError(t *testing.T) {
	wallet := &attachableWallet{attachErr: errors.New("blocked")}
	lib := &fakeLibrary{applePay: wallet}

	var gotErr string
	hooks := WalletHooks{OnError: func(msg string) { gotErr = msg }}

	w, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), NewStaticDOM(TargetApplePay), hooks)
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Ready() })

	assert.Contains(t, gotErr, "try another payment method")
	assert.False(t, w.Presented())
}

func TestWalletButtonTokenForwarded(t *testing.T) {
	wallet := &fakeWallet{}
	lib := &fakeLibrary{applePay: wallet}

	var got *Token
	hooks := WalletHooks{OnToken: func(tok *Token) { got = tok }}

	_, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), NewStaticDOM(TargetApplePay), hooks)
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Token(&Token{ID: "tok_abc"}) })

	assert.NotNil(t, got)
	assert.Equal(t, "tok_abc", got.ID)
}

func TestWalletButtonUnavailable(t *testing.T) {
	wallet := &fakeWallet{}
	lib := &fakeLibrary{googlePay: wallet}

	var gotErr string
	unavailable := false
	hooks := WalletHooks{
		OnError:       func(msg string) { gotErr = msg },
		OnUnavailable: func() { unavailable = true },
	}

	_, err := NewWalletButton(lib, enum.GOOGLEPAY, walletConfig(), NewStaticDOM(TargetGooglePay), hooks)
	assert.NoError(t, err)

	wallet.fire(func(e WalletEvents) { e.Unavailable() })

	assert.True(t, unavailable)
	assert.Contains(t, gotErr, "not available on this device")
}

func TestWalletButtonConstructorFailure(t *testing.T) {
	lib := &fakeLibrary{applePayErr: errors.New("boom")}

	_, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), NewStaticDOM(), WalletHooks{})
	assert.Error(t, err)
}

func TestWalletButtonRejectsCard(t *testing.T) {
	lib := &fakeLibrary{}
	_, err := NewWalletButton(lib, enum.CARD, walletConfig(), NewStaticDOM(), WalletHooks{})
	assert.Error(t, err)
}

func TestWalletButtonDestroyIdempotent(t *testing.T) {
	wallet := &fakeWallet{}
	lib := &fakeLibrary{applePay: wallet}

	w, err := NewWalletButton(lib, enum.APPLEPAY, walletConfig(), NewStaticDOM(TargetApplePay), WalletHooks{})
	assert.NoError(t, err)

	w.Destroy()
	w.Destroy()
	assert.True(t, wallet.destroyed)
}

func TestDetectAvailability(t *testing.T) {
	yes := PlatformFunc(func() bool { return true })
	no := PlatformFunc(func() bool { return false })

	both := &fakeLibrary{applePay: &fakeWallet{}, googlePay: &fakeWallet{}}

	a := DetectAvailability(both, yes)
	assert.True(t, a.ApplePay)
	assert.True(t, a.GooglePay)

	// Apple Pay needs the device to agree; Google Pay does not ask.
	a = DetectAvailability(both, no)
	assert.False(t, a.ApplePay)
	assert.True(t, a.GooglePay)

	a = DetectAvailability(&fakeLibrary{}, yes)
	assert.False(t, a.ApplePay)
	assert.False(t, a.GooglePay)

	a = DetectAvailability(nil, yes)
	assert.False(t, a.ApplePay)
	assert.False(t, a.GooglePay)
}
