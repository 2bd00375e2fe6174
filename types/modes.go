package types

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbridge/merchant/secure"
)

// DistributionMode is the sealed marker for the amount-distribution slot a
// gateway binds once: either all funds go to the platform, or authorize and
// capture carry explicit recipient splits. The slot is shared by every flow
// touching money movement, so the binding lives on the Gateway contract and
// stays consistent across flows.
type DistributionMode interface {
	isDistributionMode()
}

// NoDistribution is the mode for gateways without split support. It carries
// no data; the platform receives the full amount.
type NoDistribution struct{}

func (NoDistribution) isDistributionMode() {}

// DistributionWithRecipients routes portions of the amount to recipients.
type DistributionWithRecipients struct {
	Recipients Recipients
}

func (DistributionWithRecipients) isDistributionMode() {}

// VerifyTotal checks that the recipient shares sum to exactly amount.
// Gateways binding this mode call it before moving money; a distribution
// that under- or over-allocates the operation amount is invalid.
func (d DistributionWithRecipients) VerifyTotal(amount decimal.Decimal) error {
	if len(d.Recipients) == 0 {
		return &secure.ValidationError{
			Type:    "DistributionWithRecipients",
			Rule:    secure.RuleFormat,
			Message: "DistributionWithRecipients requires at least one recipient",
		}
	}
	if !d.Recipients.Total().Equal(amount) {
		return &secure.ValidationError{
			Type:    "DistributionWithRecipients",
			Rule:    secure.RuleFormat,
			Message: "DistributionWithRecipients shares do not sum to the operation amount",
		}
	}
	return nil
}

// DistributedValue is one recipient's share of a distributed amount.
type DistributedValue struct {
	Recipient string
	Value     decimal.Decimal
}

// Recipients is a validated, non-empty split of an amount across recipients.
type Recipients []DistributedValue

// NewRecipients validates that the split is non-empty, every share is
// positive, and no recipient appears twice.
func NewRecipients(values []DistributedValue) (Recipients, error) {
	if len(values) == 0 {
		return nil, &secure.ValidationError{
			Type:    "Recipients",
			Rule:    secure.RuleFormat,
			Message: "Recipients cannot be empty",
		}
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v.Recipient == "" {
			return nil, &secure.ValidationError{
				Type:    "Recipients",
				Rule:    secure.RuleFormat,
				Message: "Recipients entries require a recipient identifier",
			}
		}
		if !v.Value.IsPositive() {
			return nil, &secure.ValidationError{
				Type:    "Recipients",
				Rule:    secure.RuleFormat,
				Message: fmt.Sprintf("Recipients share for %q must be positive", v.Recipient),
			}
		}
		if _, dup := seen[v.Recipient]; dup {
			return nil, &secure.ValidationError{
				Type:    "Recipients",
				Rule:    secure.RuleFormat,
				Message: fmt.Sprintf("Recipients lists %q twice", v.Recipient),
			}
		}
		seen[v.Recipient] = struct{}{}
	}
	out := make(Recipients, len(values))
	copy(out, values)
	return out, nil
}

// Total sums all shares.
func (r Recipients) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range r {
		total = total.Add(v.Value)
	}
	return total
}

// InstallmentsMode is the sealed marker for the installment slot a gateway
// binds once. Regional plan catalogs differ in data, not in shape, so the
// closed set enumerates the structural shapes only.
type InstallmentsMode interface {
	isInstallmentsMode()
}

// NoInstallments is the mode for gateways without installment support.
type NoInstallments struct{}

func (NoInstallments) isInstallmentsMode() {}

// FixedPlan splits the amount into equal monthly charges.
type FixedPlan struct {
	Months int
}

func (FixedPlan) isInstallmentsMode() {}

// NewFixedPlan validates the plan length.
func NewFixedPlan(months int) (FixedPlan, error) {
	if months < 2 || months > 60 {
		return FixedPlan{}, &secure.ValidationError{
			Type:    "FixedPlan",
			Rule:    secure.RuleFormat,
			Message: "FixedPlan requires between 2 and 60 months",
		}
	}
	return FixedPlan{Months: months}, nil
}

// ExtendedPlan splits the amount into monthly charges after a grace period.
type ExtendedPlan struct {
	Months      int
	GraceMonths int
}

func (ExtendedPlan) isInstallmentsMode() {}

// NewExtendedPlan validates plan and grace lengths.
func NewExtendedPlan(months, graceMonths int) (ExtendedPlan, error) {
	if months < 2 || months > 60 {
		return ExtendedPlan{}, &secure.ValidationError{
			Type:    "ExtendedPlan",
			Rule:    secure.RuleFormat,
			Message: "ExtendedPlan requires between 2 and 60 months",
		}
	}
	if graceMonths < 1 || graceMonths > 12 {
		return ExtendedPlan{}, &secure.ValidationError{
			Type:    "ExtendedPlan",
			Rule:    secure.RuleFormat,
			Message: "ExtendedPlan requires between 1 and 12 grace months",
		}
	}
	return ExtendedPlan{Months: months, GraceMonths: graceMonths}, nil
}
