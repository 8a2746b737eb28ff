package address

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
)

func TestDetect(t *testing.T) {
	pub, _, _ := ed25519.GenerateKey(nil)
	sol := base58.Encode(pub)

	tests := []struct {
		name string
		addr string
		want Family
	}{
		{"solana", sol, FamilySolana},
		{"solana collection", "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR", FamilySolana},
		{"evm lower", "0x9830b32f7210f0857a859c2a86387e4d1bb760b8", FamilyEVM},
		{"evm mixed", "0x548D3B444da39686d1a6F1544781d154e7cD1EF7", FamilyEVM},
		{"evm no prefix", "9830b32f7210f0857a859c2a86387e4d1bb760b8", FamilyUnknown},
		{"short base58", "abc", FamilyUnknown},
		{"bad base58 char", "0OIl" + sol[4:], FamilyUnknown},
		{"empty", "", FamilyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.addr); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("0x548D3B444da39686d1a6F1544781d154e7cD1EF7"); got != "0x548d3b444da39686d1a6f1544781d154e7cd1ef7" {
		t.Errorf("EVM not lowercased: %s", got)
	}

	sol := "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"
	if got := Normalize(sol); got != sol {
		t.Errorf("base58 changed: %s", got)
	}
	if Equal(sol, "hxssfm9wxqwj79chaunl6oszxqjjj5imuwrjefrbvybr") {
		t.Error("base58 addresses must compare case-sensitively")
	}
	if !Equal("0xABCDEF0000000000000000000000000000000001", "0xabcdef0000000000000000000000000000000001") {
		t.Error("EVM addresses must compare case-insensitively")
	}
}

func TestValidateEVMChecksum(t *testing.T) {
	if !ValidateEVMChecksum("0x9830b32f7210f0857a859c2a86387e4d1bb760b8") {
		t.Error("all-lowercase address rejected")
	}
	if ValidateEVMChecksum("0x548d3b444da39686d1a6f1544781d154e7cd1eF7") {
		t.Error("broken checksum accepted")
	}
}
