package onboarding

import (
	"errors"
	"testing"
	"time"
)

func newTestSession() *Session {
	return NewSession("s-1", time.Unix(0, 0))
}

func TestSignInStoresCredentials(t *testing.T) {
	s := newTestSession()
	creds, err := s.SignIn("user@example.com", "pw")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	want := Credentials{Email: "user@example.com", Password: "pw"}
	if creds != want || s.Credentials != want {
		t.Fatalf("expected %+v, got returned %+v stored %+v", want, creds, s.Credentials)
	}
	if s.Stage != StageSignUp {
		t.Fatalf("expected sign_up stage, got %s", s.Stage)
	}
}

func TestSignInIdempotent(t *testing.T) {
	s := newTestSession()
	first, err := s.SignIn("user@example.com", "pw")
	if err != nil {
		t.Fatalf("first sign in: %v", err)
	}
	second, err := s.SignIn("user@example.com", "pw")
	if err != nil {
		t.Fatalf("second sign in: %v", err)
	}
	if first != second || s.Credentials != first || s.Stage != StageSignUp {
		t.Fatalf("resubmission changed the outcome: %+v %+v %+v", first, second, s)
	}
}

func TestSignInFailureLeavesSessionUntouched(t *testing.T) {
	s := newTestSession()
	if _, err := s.SignIn("a@b.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	before := *s
	if _, err := s.SignIn("not-an-email", "pw"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if *s != before {
		t.Fatalf("failed sign-in mutated the session: %+v", s)
	}
}

func TestSignUpConsistencyCheck(t *testing.T) {
	s := newTestSession()
	if _, err := s.SignIn("a@b.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	in := SignUpInput{Name: "Asha", Email: "a@b.com", MobileNumber: "9876543210", Password: "others", AgreedToTerms: true}
	if err := s.SignUp(in); !errors.Is(err, ErrCredentialsMismatch) {
		t.Fatalf("expected ErrCredentialsMismatch, got %v", err)
	}
	if s.Stage != StageSignUp || s.Credentials.Password != "secret" {
		t.Fatalf("mismatch must not change stage or credentials: %+v", s)
	}

	in.Password = "secret"
	if err := s.SignUp(in); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if s.Stage != StageOtp {
		t.Fatalf("expected otp stage, got %s", s.Stage)
	}
}

func TestSignUpDirectEntry(t *testing.T) {
	s := newTestSession()
	in := SignUpInput{Name: "Asha", Email: "x@y.io", MobileNumber: "98765-43210", Password: "whatever", AgreedToTerms: true}
	if err := s.SignUp(in); err != nil {
		t.Fatalf("direct sign up: %v", err)
	}
	if s.Stage != StageOtp {
		t.Fatalf("expected otp stage, got %s", s.Stage)
	}
}

func toOtp(t *testing.T) *Session {
	t.Helper()
	s := newTestSession()
	if _, err := s.SignIn("a@b.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := s.SignUp(SignUpInput{Name: "Asha", Email: "a@b.com", MobileNumber: "9876543210", Password: "secret", AgreedToTerms: true}); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return s
}

func TestVerifyRequiresAllSlots(t *testing.T) {
	s := toOtp(t)
	for i, d := range []string{"1", "2", "3", ""} {
		if _, _, err := s.EnterDigit(i, d); err != nil {
			t.Fatalf("enter: %v", err)
		}
	}
	if err := s.Verify(); !errors.Is(err, ErrIncompleteOtp) {
		t.Fatalf("expected ErrIncompleteOtp, got %v", err)
	}
	if s.Stage != StageOtp {
		t.Fatalf("failed verify must keep otp stage, got %s", s.Stage)
	}

	if _, _, err := s.EnterDigit(3, "4"); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if s.Stage != StageVerified {
		t.Fatalf("expected verified, got %s", s.Stage)
	}
}

func TestResendClearsSlots(t *testing.T) {
	s := toOtp(t)
	for i, d := range []string{"9", "8", "7", "6"} {
		if _, _, err := s.EnterDigit(i, d); err != nil {
			t.Fatalf("enter: %v", err)
		}
	}
	if err := s.Resend(); err != nil {
		t.Fatalf("resend: %v", err)
	}
	if s.OTP.Slots != [OTPLength]string{} || s.OTP.Focus != 0 {
		t.Fatalf("resend left %+v", s.OTP)
	}
	if err := s.Resend(); err != nil {
		t.Fatalf("resend on empty buffer: %v", err)
	}
}

func TestBackKeepsCredentials(t *testing.T) {
	s := toOtp(t)
	if _, _, err := s.EnterDigit(0, "1"); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Stage != StageSignUp || s.OTP.Code() != "" {
		t.Fatalf("expected sign_up with cleared otp, got %+v", s)
	}
	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Stage != StageSignIn {
		t.Fatalf("expected sign_in, got %s", s.Stage)
	}
	if err := s.Back(); !errors.Is(err, ErrNoPreviousStage) {
		t.Fatalf("expected ErrNoPreviousStage, got %v", err)
	}
	if s.Credentials != (Credentials{Email: "a@b.com", Password: "secret"}) {
		t.Fatalf("back must keep credentials, got %+v", s.Credentials)
	}

	// Credentials are still enforced after going back.
	err := s.SignUp(SignUpInput{Name: "Asha", Email: "a@b.com", MobileNumber: "9876543210", Password: "changed", AgreedToTerms: true})
	if !errors.Is(err, ErrCredentialsMismatch) {
		t.Fatalf("expected ErrCredentialsMismatch, got %v", err)
	}
}

func TestStageGating(t *testing.T) {
	s := newTestSession()
	if _, _, err := s.EnterDigit(0, "1"); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}
	if err := s.Verify(); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}

	s = toOtp(t)
	if _, err := s.SignIn("a@b.com", "secret"); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}
	for i := 0; i < OTPLength; i++ {
		if _, _, err := s.EnterDigit(i, "0"); err != nil {
			t.Fatalf("enter: %v", err)
		}
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := s.Back(); !errors.Is(err, ErrFlowComplete) {
		t.Fatalf("expected ErrFlowComplete, got %v", err)
	}
	if err := s.Resend(); !errors.Is(err, ErrFlowComplete) {
		t.Fatalf("expected ErrFlowComplete, got %v", err)
	}
}

func TestStageUnknownName(t *testing.T) {
	var st Stage
	if err := st.UnmarshalText([]byte("done")); err == nil {
		t.Fatal("expected unknown stage error")
	}
	if Stage(9).String() != "stage(9)" {
		t.Fatalf("unexpected name %s", Stage(9))
	}
}
