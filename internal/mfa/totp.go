package mfa

import (
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// GenerateTOTPKey provisions a new TOTP secret for a user. The returned key
// carries the otpauth URL the authenticator app enrolls with.
func GenerateTOTPKey(issuer, accountName string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		SecretSize:  32,
	})
}

// ValidateTOTP checks a 6-digit authenticator code against the stored secret.
func ValidateTOTP(code, secret string) bool {
	return totp.Validate(code, secret)
}
