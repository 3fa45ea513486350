package onboarding

import "time"

// NewSession starts a flow at the sign-in stage with no captured credentials.
func NewSession(id string, now time.Time) *Session {
	return &Session{ID: id, Stage: StageSignIn, CreatedAt: now, UpdatedAt: now}
}

// SignIn captures credentials and advances to sign-up. Resubmitting from the
// sign-up stage replaces the stored credentials.
func (s *Session) SignIn(email, password string) (Credentials, error) {
	if err := s.require(StageSignIn, StageSignUp); err != nil {
		return Credentials{}, err
	}
	creds := Credentials{Email: email, Password: password}
	if err := ValidateSignIn(creds); err != nil {
		return Credentials{}, err
	}
	s.Credentials = creds
	s.Stage = StageSignUp
	return creds, nil
}

// SignUp validates the form against the stored credentials and advances to
// the OTP stage with an empty code buffer. It is also accepted at the
// sign-in stage for flows that start on the sign-up screen.
func (s *Session) SignUp(in SignUpInput) error {
	if err := s.require(StageSignIn, StageSignUp); err != nil {
		return err
	}
	if err := ValidateSignUp(in, s.Credentials); err != nil {
		return err
	}
	s.Stage = StageOtp
	s.OTP.Reset()
	return nil
}

// EnterDigit writes one OTP slot.
func (s *Session) EnterDigit(slot int, value string) (FocusHint, bool, error) {
	if err := s.require(StageOtp); err != nil {
		return FocusHint{}, false, err
	}
	return s.OTP.EnterDigit(slot, value)
}

// Backspace erases or steps back from an OTP slot.
func (s *Session) Backspace(slot int) (FocusHint, bool, error) {
	if err := s.require(StageOtp); err != nil {
		return FocusHint{}, false, err
	}
	return s.OTP.Backspace(slot)
}

// Verify accepts any fully populated code and completes the flow.
func (s *Session) Verify() error {
	if err := s.require(StageOtp); err != nil {
		return err
	}
	if !s.OTP.Complete() {
		return ErrIncompleteOtp
	}
	s.Stage = StageVerified
	s.OTP.Reset()
	return nil
}

// Resend clears the code buffer. Delivery is the caller's concern.
func (s *Session) Resend() error {
	if err := s.require(StageOtp); err != nil {
		return err
	}
	s.OTP.Reset()
	return nil
}

// Back returns to the previous stage. Captured credentials are kept.
func (s *Session) Back() error {
	switch s.Stage {
	case StageVerified:
		return ErrFlowComplete
	case StageSignIn:
		return ErrNoPreviousStage
	case StageOtp:
		s.OTP.Reset()
	}
	s.Stage--
	return nil
}

func (s *Session) require(allowed ...Stage) error {
	if s.Stage == StageVerified {
		return ErrFlowComplete
	}
	for _, st := range allowed {
		if s.Stage == st {
			return nil
		}
	}
	return ErrWrongStage
}
