package widget

// Platform answers device capability queries that live outside the
// payment library.
type Platform interface {
	CanMakeApplePayments() bool
}

// PlatformFunc adapts a function to the Platform interface.
type PlatformFunc func() bool

func (f PlatformFunc) CanMakeApplePayments() bool { return f() }

// Availability is the wallet support detected for one session.
type Availability struct {
	ApplePay  bool
	GooglePay bool
}

// DetectAvailability probes wallet support once per session. Apple Pay
// requires both library support and a positive device answer. Google
// Pay is reported on library support alone, with no device probe.
func DetectAvailability(lib Library, platform Platform) Availability {
	a := Availability{}

	if lib == nil {
		return a
	}

	if lib.HasApplePay() && platform != nil && platform.CanMakeApplePayments() {
		a.ApplePay = true
	}

	a.GooglePay = lib.HasGooglePay()
	return a
}
