// internal/workers/communication/verification-email/models.go
package verificationemail

// VerificationRequest carries the one-time code to deliver.
type VerificationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerificationResult reports delivery back to the caller.
type VerificationResult struct {
	Success bool `json:"success"`
}

const subject = "Your Super Fruit Center Verification Code"
