package onboarding

// User-facing messages surfaced through a state's ErrorMessage.
const (
	MsgRoleRequired      = "Selecciona una opción para continuar."
	MsgPinLength         = "El PIN debe tener 6 dígitos."
	MsgPinMismatch       = "El PIN no coincide, inténtalo nuevamente."
	MsgBackupUnconfirmed = "Confirma que guardaste la frase semilla antes de continuar."
)

// ValidationError is a user-correctable input problem. Controllers return it
// from Dispatch and mirror Message into the state's ErrorMessage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
