package types

import "github.com/finbridge/merchant/secure"

// PaymentMethod is the sealed root marker for payment instruments. The
// variant set is closed: the unexported method keeps outside packages from
// adding instruments, so capability interfaces can rely on a known set.
type PaymentMethod interface {
	isPaymentMethod()
}

// SyncMethod marks instruments usable in synchronous flows (immediate
// charge, deferred authorize/capture, 3-D Secure authentication).
type SyncMethod interface {
	PaymentMethod
	isSyncMethod()
}

// ExternalMethod marks instruments whose payment completes outside the
// direct flow: customer redirect, voucher, QR code, or manual transfer.
type ExternalMethod interface {
	PaymentMethod
	isExternalMethod()
}

// TokenizableMethod marks instruments that can be exchanged for a vault
// token.
type TokenizableMethod interface {
	PaymentMethod
	isTokenizableMethod()
}

// CardExpiry is a card expiration month and year. Expiry is not secret on
// its own and stays outside the tier system.
type CardExpiry struct {
	Month int
	Year  int
}

// NewCardExpiry validates calendar bounds. Whether the card has expired
// relative to the processing date is the adapter's concern.
func NewCardExpiry(month, year int) (CardExpiry, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return CardExpiry{}, &secure.ValidationError{
			Type:    "CardExpiry",
			Rule:    secure.RuleFormat,
			Message: "CardExpiry requires month 1-12 and a four-digit year",
		}
	}
	return CardExpiry{Month: month, Year: year}, nil
}

// CreditCard is a card-not-present instrument. The CVV must be destroyed
// after the authorization call returns; it never survives the request.
type CreditCard struct {
	Number     secure.PAN
	CVV        secure.CVV
	Expiry     CardExpiry
	HolderName secure.CardHolderName
}

func (CreditCard) isPaymentMethod()     {}
func (CreditCard) isSyncMethod()        {}
func (CreditCard) isExternalMethod()    {}
func (CreditCard) isTokenizableMethod() {}

// StoredCard charges a previously vaulted card through its token.
type StoredCard struct {
	Token  secure.PaymentToken
	Expiry CardExpiry
}

func (StoredCard) isPaymentMethod() {}
func (StoredCard) isSyncMethod()    {}

// BankPayment is an ACH-style direct bank debit.
type BankPayment struct {
	AccountNumber secure.AccountNumber
	RoutingNumber secure.RoutingNumber
	HolderName    secure.FullName
	AccountType   AccountType
	HolderType    AccountHolderType
}

func (BankPayment) isPaymentMethod()     {}
func (BankPayment) isSyncMethod()        {}
func (BankPayment) isTokenizableMethod() {}

// SEPA is a Single Euro Payments Area direct debit under an existing
// mandate.
type SEPA struct {
	IBAN             secure.IBAN
	HolderName       secure.FullName
	MandateReference MerchantReferenceID
}

func (SEPA) isPaymentMethod()  {}
func (SEPA) isSyncMethod()     {}
func (SEPA) isExternalMethod() {}

// InstantAccount is an instant-payment alias such as a UPI handle. The
// customer approves the collect request in their banking app.
type InstantAccount struct {
	Address secure.VirtualPaymentAddress
}

func (InstantAccount) isPaymentMethod()  {}
func (InstantAccount) isExternalMethod() {}

// CashVoucher issues a reference the customer pays at a physical location.
type CashVoucher struct {
	HolderName secure.FullName
}

func (CashVoucher) isPaymentMethod()  {}
func (CashVoucher) isExternalMethod() {}

// CryptoPayment settles to a cryptocurrency wallet address.
type CryptoPayment struct {
	Wallet   secure.WalletAddress
	Currency Currency
}

func (CryptoPayment) isPaymentMethod()  {}
func (CryptoPayment) isExternalMethod() {}

// BNPL is a buy-now-pay-later application; the provider underwrites the
// customer during an external redirect, which is why it carries more
// customer data than any other instrument. BirthDate and NationalID are
// optional; providers in most markets underwrite without them.
type BNPL struct {
	FullName       secure.FullName
	Email          secure.EmailAddress
	BillingAddress Address
	HolderType     AccountHolderType
	Phone          secure.PhoneNumber
	BirthDate      *BirthDate
	NationalID     *secure.NationalID
}

func (BNPL) isPaymentMethod()  {}
func (BNPL) isExternalMethod() {}

// DirectCarrierBilling charges the amount to a mobile subscriber bill.
type DirectCarrierBilling struct {
	Phone secure.PhoneNumber
}

func (DirectCarrierBilling) isPaymentMethod()  {}
func (DirectCarrierBilling) isExternalMethod() {}
