package middleware

import (
	"testing"
)

type phoneFixture struct {
	Phone string `validate:"required,in_phone"`
}

type otpFixture struct {
	OTP string `validate:"required,otp"`
}

type pincodeFixture struct {
	Pincode string `validate:"required,pincode"`
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+919876543210", true},
		{"+911234567890", true},
		{"9876543210", false},
		{"+91987654321", false},
		{"+9198765432100", false},
		{"+9198765432ab", false},
		{"+129876543210", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateRequest(phoneFixture{Phone: tt.phone})
		if tt.valid && err != nil {
			t.Errorf("phone %q rejected: %v", tt.phone, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("phone %q accepted, want rejection", tt.phone)
		}
	}
}

func TestOTPValidation(t *testing.T) {
	tests := []struct {
		otp   string
		valid bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12345a", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateRequest(otpFixture{OTP: tt.otp})
		if tt.valid && err != nil {
			t.Errorf("otp %q rejected: %v", tt.otp, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("otp %q accepted, want rejection", tt.otp)
		}
	}
}

func TestPincodeValidation(t *testing.T) {
	tests := []struct {
		pincode string
		valid   bool
	}{
		{"110001", true},
		{"560001", true},
		{"1100", false},
		{"11000a", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateRequest(pincodeFixture{Pincode: tt.pincode})
		if tt.valid && err != nil {
			t.Errorf("pincode %q rejected: %v", tt.pincode, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("pincode %q accepted, want rejection", tt.pincode)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	err := ValidateRequest(phoneFixture{Phone: "bogus"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 1 {
		t.Fatalf("expected 1 formatted error, got %d", len(formatted))
	}
	if formatted[0].Field != "Phone" {
		t.Errorf("field = %q, want Phone", formatted[0].Field)
	}
	if formatted[0].Message == "" {
		t.Error("expected a human-readable message")
	}
}
