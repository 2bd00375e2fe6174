package types

// Transaction is the canonical result of any flow operation. Gateways
// construct it from provider responses; the core only defines the shape.
type Transaction struct {
	// ID is the gateway-assigned identifier.
	ID TransactionID
	// IdempotenceKey echoes the client-supplied key, enabling recovery
	// searches when the ID was lost before persistence.
	IdempotenceKey IdempotenceKey
	// Status is the canonical transaction status.
	Status TransactionStatus
	// Amount is the operation amount.
	Amount Money
	// Flow records the completion shape the transaction went through.
	Flow Flow
	// Initiated is set for merchant-initiated transactions.
	Initiated MerchantInitiatedType
	// Metadata carries provider-specific flow annotations.
	Metadata Metadata
}

// Payment is a validated, owned payment request bound to a concrete
// instrument type and an installment mode. The type parameters are fixed by
// the gateway binding, so a payment built for one gateway cannot be handed
// to an incompatible one.
type Payment[M PaymentMethod, I InstallmentsMode] struct {
	Method         M
	Amount         Money
	IdempotenceKey IdempotenceKey
	Installments   I
	Metadata       Metadata
}
