//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("SLOTH_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("SLOTH_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour SLOTH_MOBILE_EMULATE=1")
	}
}
