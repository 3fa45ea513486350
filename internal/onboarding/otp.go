package onboarding

import "strings"

// OTPLength is the number of slots in a verification code.
const OTPLength = 4

// FocusHint tells the view which OTP slot should receive input focus next.
type FocusHint struct {
	Slot int `json:"slot"`
}

// OTP is the 4-slot verification code buffer with its current input focus.
type OTP struct {
	Slots [OTPLength]string `json:"slots"`
	Focus int               `json:"focus"`
}

// EnterDigit sets slot to value. Only the empty string or a single digit is
// accepted; anything else leaves the buffer untouched. A digit entered before
// the last slot moves focus forward.
func (o *OTP) EnterDigit(slot int, value string) (FocusHint, bool, error) {
	if err := checkSlot(slot); err != nil {
		return FocusHint{}, false, err
	}
	if value != "" && !isDigit(value) {
		return FocusHint{}, false, nil
	}

	o.Slots[slot] = value
	o.Focus = slot
	if value != "" && slot < OTPLength-1 {
		o.Focus = slot + 1
		return FocusHint{Slot: o.Focus}, true, nil
	}
	return FocusHint{}, false, nil
}

// Backspace clears a filled slot in place. On an empty slot it moves focus to
// the previous slot without clearing it.
func (o *OTP) Backspace(slot int) (FocusHint, bool, error) {
	if err := checkSlot(slot); err != nil {
		return FocusHint{}, false, err
	}
	if o.Slots[slot] != "" {
		o.Slots[slot] = ""
		o.Focus = slot
		return FocusHint{}, false, nil
	}
	if slot == 0 {
		o.Focus = 0
		return FocusHint{}, false, nil
	}
	o.Focus = slot - 1
	return FocusHint{Slot: o.Focus}, true, nil
}

// Code concatenates the slots.
func (o *OTP) Code() string {
	return strings.Join(o.Slots[:], "")
}

// Complete reports whether every slot holds a digit.
func (o *OTP) Complete() bool {
	return len(o.Code()) == OTPLength
}

// Reset clears every slot and returns focus to the first one.
func (o *OTP) Reset() {
	*o = OTP{}
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= OTPLength {
		return ErrSlotOutOfRange
	}
	return nil
}

func isDigit(value string) bool {
	return len(value) == 1 && value[0] >= '0' && value[0] <= '9'
}
