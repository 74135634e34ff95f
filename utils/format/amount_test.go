package format

import (
	"errors"
	"testing"
)

func TestParseNearAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    string
		wantErr error
	}{
		{name: "empty", amount: "", want: ""},
		{name: "one", amount: "1", want: "1000000000000000000000000"},
		{name: "fraction", amount: "0.1", want: "100000000000000000000000"},
		{name: "commas", amount: "1,000", want: "1000000000000000000000000000"},
		{name: "one yocto", amount: "0.000000000000000000000001", want: "1"},
		{name: "too precise", amount: "0.0000000000000000000000001", wantErr: ErrTooPrecise},
		{name: "negative", amount: "-1", wantErr: ErrNegativeAmount},
		{name: "garbage", amount: "ten", wantErr: ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNearAmount(tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseNearAmount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNearAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatNearAmount(t *testing.T) {
	tests := []struct {
		name    string
		yocto   string
		want    string
		wantErr bool
	}{
		{name: "zero", yocto: "0", want: "0"},
		{name: "one", yocto: "1000000000000000000000000", want: "1"},
		{name: "fraction", yocto: "1500000000000000000000000", want: "1.5"},
		{name: "one yocto", yocto: "1", want: "0.000000000000000000000001"},
		{name: "garbage", yocto: "lots", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatNearAmount(tt.yocto)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatNearAmount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatNearAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormatInverse(t *testing.T) {
	for _, amount := range []string{"1", "0.25", "123.456"} {
		yocto, err := ParseNearAmount(amount)
		if err != nil {
			t.Fatal(err)
		}
		back, err := FormatNearAmount(yocto)
		if err != nil {
			t.Fatal(err)
		}
		if back != amount {
			t.Errorf("FormatNearAmount(ParseNearAmount(%s)) = %s", amount, back)
		}
	}
}
