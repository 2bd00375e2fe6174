// Package inputs defines the unvalidated, client-facing request shapes and
// their validating conversion into the owned types of package types.
//
// Inputs are plain structs of strings and numbers; clients construct them
// directly, typically from HTTP or form data. Convert is the single point
// where validation failures surface and the only place allocation and
// tier-wrapping happen, so no protected memory is ever allocated for data
// that turns out to be malformed.
package inputs

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

var validate = validator.New()

// convErr folds a validator error into the shared validation taxonomy
// without copying any field values into the message.
func convErr(shape string, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		first := verrs[0]
		return &secure.ValidationError{
			Type:    shape,
			Rule:    secure.RuleFormat,
			Message: fmt.Sprintf("%s field %s failed the %s rule", shape, first.Field(), first.Tag()),
		}
	}
	return &secure.ValidationError{
		Type:    shape,
		Rule:    secure.RuleFormat,
		Message: fmt.Sprintf("%s failed validation", shape),
	}
}

// Converter is the conversion contract every payment-method input satisfies
// for its corresponding owned variant. Payment is generic over it so a
// payment input carries exactly one compatible method input.
type Converter[M types.PaymentMethod] interface {
	Convert() (M, error)
}

// CreditCard is the input shape for a card-not-present payment.
type CreditCard struct {
	Number      string `validate:"required"`
	CVV         string `validate:"required"`
	ExpiryMonth int    `validate:"required,min=1,max=12"`
	ExpiryYear  int    `validate:"required,min=2000,max=2100"`
	HolderName  string `validate:"required"`
}

// Convert validates the input and wraps the sensitive fields. On any
// failure every already-wrapped value is destroyed before returning, so a
// failed conversion leaves no protected memory behind.
func (in CreditCard) Convert() (types.CreditCard, error) {
	if err := validate.Struct(in); err != nil {
		return types.CreditCard{}, convErr("CreditCard", err)
	}
	pan, err := secure.NewPAN(in.Number)
	if err != nil {
		return types.CreditCard{}, err
	}
	cvv, err := secure.NewCVV(in.CVV)
	if err != nil {
		pan.Destroy()
		return types.CreditCard{}, err
	}
	expiry, err := types.NewCardExpiry(in.ExpiryMonth, in.ExpiryYear)
	if err != nil {
		pan.Destroy()
		cvv.Destroy()
		return types.CreditCard{}, err
	}
	name, err := secure.NewCardHolderName(in.HolderName)
	if err != nil {
		pan.Destroy()
		cvv.Destroy()
		return types.CreditCard{}, err
	}
	return types.CreditCard{Number: pan, CVV: cvv, Expiry: expiry, HolderName: name}, nil
}

// StoredCard is the input shape for charging a vaulted card token.
type StoredCard struct {
	Token       string `validate:"required"`
	ExpiryMonth int    `validate:"required,min=1,max=12"`
	ExpiryYear  int    `validate:"required,min=2000,max=2100"`
}

// Convert validates the input and wraps the token.
func (in StoredCard) Convert() (types.StoredCard, error) {
	if err := validate.Struct(in); err != nil {
		return types.StoredCard{}, convErr("StoredCard", err)
	}
	token, err := secure.NewPaymentToken(in.Token)
	if err != nil {
		return types.StoredCard{}, err
	}
	expiry, err := types.NewCardExpiry(in.ExpiryMonth, in.ExpiryYear)
	if err != nil {
		token.Destroy()
		return types.StoredCard{}, err
	}
	return types.StoredCard{Token: token, Expiry: expiry}, nil
}

// BankPayment is the input shape for an ACH-style bank debit.
type BankPayment struct {
	AccountNumber string `validate:"required"`
	RoutingNumber string `validate:"required"`
	HolderName    string `validate:"required"`
	AccountType   string `validate:"required,oneof=checking savings"`
	HolderType    string `validate:"required,oneof=personal business"`
}

// Convert validates the input and wraps the sensitive fields.
func (in BankPayment) Convert() (types.BankPayment, error) {
	if err := validate.Struct(in); err != nil {
		return types.BankPayment{}, convErr("BankPayment", err)
	}
	account, err := secure.NewAccountNumber(in.AccountNumber)
	if err != nil {
		return types.BankPayment{}, err
	}
	routing, err := secure.NewRoutingNumber(in.RoutingNumber)
	if err != nil {
		account.Destroy()
		return types.BankPayment{}, err
	}
	name, err := secure.NewFullName(in.HolderName)
	if err != nil {
		account.Destroy()
		routing.Destroy()
		return types.BankPayment{}, err
	}
	return types.BankPayment{
		AccountNumber: account,
		RoutingNumber: routing,
		HolderName:    name,
		AccountType:   types.AccountType(in.AccountType),
		HolderType:    types.AccountHolderType(in.HolderType),
	}, nil
}

// SEPA is the input shape for a SEPA direct debit under a mandate.
type SEPA struct {
	IBAN             string `validate:"required"`
	HolderName       string `validate:"required"`
	MandateReference string `validate:"required"`
}

// Convert validates the input and wraps the sensitive fields.
func (in SEPA) Convert() (types.SEPA, error) {
	if err := validate.Struct(in); err != nil {
		return types.SEPA{}, convErr("SEPA", err)
	}
	iban, err := secure.NewIBAN(in.IBAN)
	if err != nil {
		return types.SEPA{}, err
	}
	name, err := secure.NewFullName(in.HolderName)
	if err != nil {
		iban.Destroy()
		return types.SEPA{}, err
	}
	mandate, err := types.NewMerchantReferenceID(in.MandateReference)
	if err != nil {
		iban.Destroy()
		return types.SEPA{}, err
	}
	return types.SEPA{IBAN: iban, HolderName: name, MandateReference: mandate}, nil
}

// InstantAccount is the input shape for an instant-payment alias.
type InstantAccount struct {
	Address string `validate:"required"`
}

// Convert validates the input and wraps the alias.
func (in InstantAccount) Convert() (types.InstantAccount, error) {
	if err := validate.Struct(in); err != nil {
		return types.InstantAccount{}, convErr("InstantAccount", err)
	}
	addr, err := secure.NewVirtualPaymentAddress(in.Address)
	if err != nil {
		return types.InstantAccount{}, err
	}
	return types.InstantAccount{Address: addr}, nil
}

// CashVoucher is the input shape for a cash voucher payment.
type CashVoucher struct {
	HolderName string `validate:"required"`
}

// Convert validates the input and wraps the name.
func (in CashVoucher) Convert() (types.CashVoucher, error) {
	if err := validate.Struct(in); err != nil {
		return types.CashVoucher{}, convErr("CashVoucher", err)
	}
	name, err := secure.NewFullName(in.HolderName)
	if err != nil {
		return types.CashVoucher{}, err
	}
	return types.CashVoucher{HolderName: name}, nil
}

// CryptoPayment is the input shape for a cryptocurrency payment.
type CryptoPayment struct {
	Wallet   string `validate:"required"`
	Currency string `validate:"required,len=3"`
}

// Convert validates the input and wraps the wallet address.
func (in CryptoPayment) Convert() (types.CryptoPayment, error) {
	if err := validate.Struct(in); err != nil {
		return types.CryptoPayment{}, convErr("CryptoPayment", err)
	}
	wallet, err := secure.NewWalletAddress(in.Wallet)
	if err != nil {
		return types.CryptoPayment{}, err
	}
	currency, err := types.ParseCurrency(in.Currency)
	if err != nil {
		wallet.Destroy()
		return types.CryptoPayment{}, err
	}
	return types.CryptoPayment{Wallet: wallet, Currency: currency}, nil
}

// BNPL is the input shape for a buy-now-pay-later application. The provider
// underwrites the customer, so the input carries the billing address and,
// for markets that require them, the birth date and national ID.
type BNPL struct {
	FullName       string `validate:"required"`
	Email          string `validate:"required,email"`
	Phone          string `validate:"required"`
	HolderType     string `validate:"required,oneof=personal business"`
	BillingAddress Address
	BirthDay       int    `validate:"omitempty,min=1,max=31"`
	BirthMonth     int    `validate:"omitempty,min=1,max=12"`
	BirthYear      int    `validate:"omitempty,min=1909,max=2050"`
	NationalID     string
}

// Convert validates the input and wraps the customer fields. On any failure
// every already-wrapped value is destroyed before returning.
func (in BNPL) Convert() (types.BNPL, error) {
	if err := validate.Struct(in); err != nil {
		return types.BNPL{}, convErr("BNPL", err)
	}
	name, err := secure.NewFullName(in.FullName)
	if err != nil {
		return types.BNPL{}, err
	}
	email, err := secure.NewEmailAddress(in.Email)
	if err != nil {
		name.Destroy()
		return types.BNPL{}, err
	}
	phone, err := secure.NewPhoneNumber(in.Phone)
	if err != nil {
		name.Destroy()
		email.Destroy()
		return types.BNPL{}, err
	}
	address, err := in.BillingAddress.Convert()
	if err != nil {
		name.Destroy()
		email.Destroy()
		phone.Destroy()
		return types.BNPL{}, err
	}
	out := types.BNPL{
		FullName:       name,
		Email:          email,
		Phone:          phone,
		HolderType:     types.AccountHolderType(in.HolderType),
		BillingAddress: address,
	}
	destroyAll := func() {
		name.Destroy()
		email.Destroy()
		phone.Destroy()
		address.Destroy()
	}
	if in.BirthYear != 0 || in.BirthMonth != 0 || in.BirthDay != 0 {
		birth, err := types.NewBirthDate(in.BirthDay, in.BirthMonth, in.BirthYear)
		if err != nil {
			destroyAll()
			return types.BNPL{}, err
		}
		out.BirthDate = &birth
	}
	if in.NationalID != "" {
		id, err := secure.NewNationalID(in.NationalID)
		if err != nil {
			destroyAll()
			return types.BNPL{}, err
		}
		out.NationalID = &id
	}
	return out, nil
}

// DirectCarrierBilling is the input shape for a carrier-billed payment.
type DirectCarrierBilling struct {
	Phone string `validate:"required"`
}

// Convert validates the input and wraps the number.
func (in DirectCarrierBilling) Convert() (types.DirectCarrierBilling, error) {
	if err := validate.Struct(in); err != nil {
		return types.DirectCarrierBilling{}, convErr("DirectCarrierBilling", err)
	}
	phone, err := secure.NewPhoneNumber(in.Phone)
	if err != nil {
		return types.DirectCarrierBilling{}, err
	}
	return types.DirectCarrierBilling{Phone: phone}, nil
}

// Payment is the input shape for a full payment request, generic over the
// payment-method input it carries and the installment mode the target
// gateway binds.
type Payment[M types.PaymentMethod, I types.InstallmentsMode] struct {
	Amount         string
	Currency       string
	IdempotenceKey string
	Method         Converter[M]
	Installments   I
	Metadata       map[string]string
}

// Convert validates every field and produces the owned payment. The
// conversion is all-or-nothing; metadata is copied so the result never
// shares memory with the input.
func (in Payment[M, I]) Convert() (types.Payment[M, I], error) {
	var zero types.Payment[M, I]
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return zero, &secure.ValidationError{
			Type:    "Payment",
			Rule:    secure.RuleFormat,
			Message: "Payment amount is not a valid decimal",
		}
	}
	currency, err := types.ParseCurrency(in.Currency)
	if err != nil {
		return zero, err
	}
	money, err := types.NewMoney(amount, currency)
	if err != nil {
		return zero, err
	}
	if !money.Amount.IsPositive() {
		return zero, &secure.ValidationError{
			Type:    "Payment",
			Rule:    secure.RuleFormat,
			Message: "Payment amount must be positive",
		}
	}
	key, err := types.NewIdempotenceKey(in.IdempotenceKey)
	if err != nil {
		return zero, err
	}
	if in.Method == nil {
		return zero, &secure.ValidationError{
			Type:    "Payment",
			Rule:    secure.RuleFormat,
			Message: "Payment requires a payment method",
		}
	}
	method, err := in.Method.Convert()
	if err != nil {
		return zero, err
	}
	return types.Payment[M, I]{
		Method:         method,
		Amount:         money,
		IdempotenceKey: key,
		Installments:   in.Installments,
		Metadata:       types.Metadata(in.Metadata).Clone(),
	}, nil
}
