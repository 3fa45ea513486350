package onboarding

import "fmt"

// Stage is the position of a session in the onboarding flow.
type Stage int

const (
	StageSignIn Stage = iota
	StageSignUp
	StageOtp
	StageVerified
)

var stageNames = [...]string{
	StageSignIn:   "sign_in",
	StageSignUp:   "sign_up",
	StageOtp:      "otp",
	StageVerified: "verified",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// MarshalText encodes the stage by name so stored sessions stay readable.
func (s Stage) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stageNames) {
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	for i, name := range stageNames {
		if name == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", string(text))
}
