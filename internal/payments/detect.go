package payments

import "strings"

// DetectMethod picks the payment rail for a phone number. East African
// numbers on local prefixes go through M-Pesa, everyone else through
// Flutterwave.
func DetectMethod(phoneNumber, countryCode string) string {
	switch countryCode {
	case "KE", "TZ", "UG":
		if strings.HasPrefix(phoneNumber, "254") ||
			strings.HasPrefix(phoneNumber, "255") ||
			strings.HasPrefix(phoneNumber, "256") {
			return "mpesa"
		}
	}
	return "flutterwave"
}
