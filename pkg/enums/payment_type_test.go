package enums

import "testing"

func TestParsePaymentType(t *testing.T) {
	tests := []struct {
		in      string
		want    PaymentType
		wantErr bool
	}{
		{in: "CASH", want: PaymentTypeCash},
		{in: " credit ", want: PaymentTypeCredit},
		{in: "Cash", want: PaymentTypeCash},
		{in: "ach", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePaymentType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("expected %s for %q, got %s", tt.want, tt.in, got)
		}
		if !got.IsValid() {
			t.Fatalf("expected %s to be valid", got)
		}
	}

	if PaymentType("cash").IsValid() {
		t.Fatalf("lowercase literal should not be valid without parsing")
	}
}
