// Package refund implements the lead-time refund tables of the hotel
// cancellation policies.
package refund

import (
	"math"
	"time"

	"hut/internal/domain"
)

// pickupCutoff applies to the pickup add-on under every policy.
const pickupCutoff = 24.0

type Input struct {
	Policy          domain.CancellationPolicy
	CancelledAt     time.Time
	CheckIn         time.Time
	TotalPaid       int64
	PickupTotal     int64
	PickupRequested bool
}

func Calculate(in Input) domain.Refund {
	leadHours := in.CheckIn.Sub(in.CancelledAt).Hours()
	totalPaid := max(0, in.TotalPaid)
	pickupTotal := max(0, in.PickupTotal)
	nonPickupPaid := max(0, totalPaid-pickupTotal)

	percent := RefundablePercent(in.Policy, leadHours)
	baseRefund := int64(math.Round(float64(nonPickupPaid) * percent))
	var pickupRefund int64
	if in.PickupRequested && leadHours >= pickupCutoff {
		pickupRefund = pickupTotal
	}

	return domain.Refund{
		LeadHours:         leadHours,
		RefundablePercent: percent,
		BaseRefund:        baseRefund,
		PickupRefund:      pickupRefund,
		RefundTotal:       min(totalPaid, baseRefund+pickupRefund),
		Rules:             Rules(in.Policy),
	}
}

// RefundablePercent is the fraction of the non-pickup amount returned for a
// cancellation leadHours before check-in. Unknown policies refund nothing.
func RefundablePercent(policy domain.CancellationPolicy, leadHours float64) float64 {
	switch policy {
	case domain.PolicyFlexible:
		switch {
		case leadHours >= 48:
			return 1
		case leadHours >= 24:
			return 0.5
		}
	case domain.PolicyModerate:
		switch {
		case leadHours >= 72:
			return 0.75
		case leadHours >= 24:
			return 0.3
		}
	case domain.PolicyStrict:
		if leadHours >= 72 {
			return 0.5
		}
	}
	return 0
}

func Rules(policy domain.CancellationPolicy) []string {
	const pickupRule = "Pickup add-on is fully refundable only if cancelled at least 24 hours before check-in"

	switch policy {
	case domain.PolicyFlexible:
		return []string{
			"100% refund if cancelled 48+ hours before check-in",
			"50% refund if cancelled 24-48 hours before check-in",
			"No refund if cancelled within 24 hours",
			pickupRule,
		}
	case domain.PolicyModerate:
		return []string{
			"75% refund if cancelled 72+ hours before check-in",
			"30% refund if cancelled 24-72 hours before check-in",
			"No refund if cancelled within 24 hours",
			pickupRule,
		}
	case domain.PolicyStrict:
		return []string{
			"50% refund if cancelled 72+ hours before check-in",
			"No refund if cancelled within 72 hours",
			pickupRule,
		}
	default:
		return []string{"Policy configured by hotel.", "Manual review may be required."}
	}
}

// PaymentStatusFor maps a refund outcome onto the booking payment status.
func PaymentStatusFor(refundTotal, totalPaid int64) domain.PaymentStatus {
	switch {
	case refundTotal >= totalPaid:
		return domain.PaymentRefunded
	case refundTotal > 0:
		return domain.PaymentPartiallyRefunded
	default:
		return domain.PaymentNotRefundable
	}
}
