package onboarding

import (
	"errors"
	"testing"
)

func fill(t *testing.T, o *OTP, digits ...string) {
	t.Helper()
	for i, d := range digits {
		if _, _, err := o.EnterDigit(i, d); err != nil {
			t.Fatalf("enter %q at %d: %v", d, i, err)
		}
	}
}

func TestOTPEnterDigitAdvancesFocus(t *testing.T) {
	var o OTP
	for i := 0; i < OTPLength-1; i++ {
		hint, moved, err := o.EnterDigit(i, "7")
		if err != nil {
			t.Fatalf("enter: %v", err)
		}
		if !moved || hint.Slot != i+1 {
			t.Fatalf("slot %d: expected focus hint %d, got %v %v", i, i+1, hint, moved)
		}
	}
	if _, moved, _ := o.EnterDigit(OTPLength-1, "7"); moved {
		t.Fatal("last slot must not move focus")
	}
	if o.Code() != "7777" {
		t.Fatalf("unexpected code %q", o.Code())
	}
}

func TestOTPEnterDigitRejectsInvalidInput(t *testing.T) {
	var o OTP
	fill(t, &o, "1")
	for _, value := range []string{"12", "a", " ", "١"} {
		if _, moved, err := o.EnterDigit(0, value); err != nil || moved {
			t.Fatalf("%q: expected silent no-op, got moved=%v err=%v", value, moved, err)
		}
		if o.Slots[0] != "1" {
			t.Fatalf("%q: slot was modified to %q", value, o.Slots[0])
		}
	}
	if _, _, err := o.EnterDigit(4, "1"); !errors.Is(err, ErrSlotOutOfRange) {
		t.Fatalf("expected ErrSlotOutOfRange, got %v", err)
	}
}

func TestOTPBackspace(t *testing.T) {
	var o OTP
	fill(t, &o, "1", "2", "3")

	// Slot 3 is empty: focus steps back, slot 2 keeps its digit.
	hint, moved, err := o.Backspace(3)
	if err != nil || !moved || hint.Slot != 2 {
		t.Fatalf("expected focus hint 2, got %v %v %v", hint, moved, err)
	}
	if o.Slots[2] != "3" {
		t.Fatalf("focus move must not clear slot 2, got %q", o.Slots[2])
	}

	// Slot 2 is filled: it is cleared in place.
	if _, moved, _ := o.Backspace(2); moved {
		t.Fatal("clearing a filled slot must not move focus")
	}
	if o.Slots[2] != "" {
		t.Fatalf("expected slot 2 cleared, got %q", o.Slots[2])
	}

	var empty OTP
	if _, moved, _ := empty.Backspace(0); moved {
		t.Fatal("backspace at slot 0 has nowhere to go")
	}
}

func TestOTPCompleteAndReset(t *testing.T) {
	var o OTP
	fill(t, &o, "1", "2", "3", "")
	if o.Complete() {
		t.Fatal("three digits must be incomplete")
	}
	fill(t, &o, "1", "2", "3", "4")
	if !o.Complete() {
		t.Fatal("four digits must be complete")
	}
	o.Reset()
	if o.Code() != "" || o.Focus != 0 {
		t.Fatalf("reset left %+v", o)
	}
}
