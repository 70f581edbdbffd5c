package payment

import (
	"fmt"
	"strings"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
)

type PayerKind string

const (
	PayerKindStudent  PayerKind = "student"
	PayerKindTutor    PayerKind = "tutor"
	PayerKindGuardian PayerKind = "guardian"
)

var payerKinds = []string{string(PayerKindStudent), string(PayerKindTutor), string(PayerKindGuardian)}

type (
	StudentID  string
	TutorID    string
	GuardianID string
)

// Payer identifies the principal that owns a payment. The set of
// implementations is closed; switch on the concrete type to reach the
// kind-specific identifier.
type Payer interface {
	Kind() PayerKind
	// Ref is the identifier as stored and as used for audit attribution.
	Ref() string
	isPayer()
}

type StudentPayer struct{ ID StudentID }

type TutorPayer struct{ ID TutorID }

type GuardianPayer struct{ ID GuardianID }

func (StudentPayer) Kind() PayerKind  { return PayerKindStudent }
func (TutorPayer) Kind() PayerKind    { return PayerKindTutor }
func (GuardianPayer) Kind() PayerKind { return PayerKindGuardian }

func (p StudentPayer) Ref() string  { return string(p.ID) }
func (p TutorPayer) Ref() string    { return string(p.ID) }
func (p GuardianPayer) Ref() string { return string(p.ID) }

func (StudentPayer) isPayer()  {}
func (TutorPayer) isPayer()    {}
func (GuardianPayer) isPayer() {}

// NewPayer builds the payer variant for kind. Unknown kinds and empty ids are
// validation errors.
func NewPayer(kind, id string) (Payer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationFieldError("payer_id", "payer_id is required", errors.ErrCodeValidationFailed)
	}

	switch PayerKind(strings.ToLower(strings.TrimSpace(kind))) {
	case PayerKindStudent:
		return StudentPayer{ID: StudentID(id)}, nil
	case PayerKindTutor:
		return TutorPayer{ID: TutorID(id)}, nil
	case PayerKindGuardian:
		return GuardianPayer{ID: GuardianID(id)}, nil
	default:
		return nil, errors.NewValidationFieldError("payer_type",
			fmt.Sprintf("payer_type must be one of %s", strings.Join(payerKinds, ", ")),
			errors.ErrCodeInvalidPayerType)
	}
}
