package service

// The platform keeps 30% of every wallet-funding payment.
const yieldRatePercent = 30

// SplitAmount divides a captured gross between platform and merchant. The
// yield share is rounded half-up; the merchant share is derived by
// subtraction, never rounded independently, so the two always sum back to
// gross for any non-negative amount.
func SplitAmount(gross int64) (yieldShare, merchantShare int64) {
	yieldShare = (gross*yieldRatePercent + 50) / 100
	merchantShare = gross - yieldShare
	return yieldShare, merchantShare
}
