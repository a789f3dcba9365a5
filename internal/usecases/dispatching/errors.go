package dispatching

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifica as falhas do dispatcher em variantes fechadas,
// para que chamadores e testes casem por tipo e não por substring
type Kind string

const (
	KindInvalidRequest   Kind = "invalid_request"
	KindUnknownAction    Kind = "unknown_action"
	KindMissingParameter Kind = "missing_parameter"
	KindValidation       Kind = "validation"
	KindStore            Kind = "store"
)

// ActionError carrega a variante e o contexto estruturado da falha
type ActionError struct {
	Kind    Kind
	Action  string
	Field   string
	message string
	cause   error
}

func (e *ActionError) Error() string {
	return e.message
}

func (e *ActionError) Unwrap() error {
	return e.cause
}

// KindOf resolve a variante de um erro; erros desconhecidos contam
// como falha de store (a única fonte de erros não produzidos aqui)
func KindOf(err error) Kind {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Kind
	}
	return KindStore
}

func newMissingAction() *ActionError {
	return &ActionError{
		Kind:    KindInvalidRequest,
		message: "missing action",
	}
}

// newUnknownAction enumera todas as actions registradas na mensagem,
// para que o chamador descubra o conjunto disponível
func newUnknownAction(action string, known []string) *ActionError {
	return &ActionError{
		Kind:    KindUnknownAction,
		Action:  action,
		message: fmt.Sprintf("unknown action %q. Known actions: %s", action, strings.Join(known, ", ")),
	}
}

func newMissingParameter(action, field string) *ActionError {
	return &ActionError{
		Kind:    KindMissingParameter,
		Action:  action,
		Field:   field,
		message: fmt.Sprintf("missing required parameter %q for action %q", field, action),
	}
}

func newValidation(action, field, message string) *ActionError {
	return &ActionError{
		Kind:    KindValidation,
		Action:  action,
		Field:   field,
		message: message,
	}
}

func newStoreError(action string, cause error) *ActionError {
	return &ActionError{
		Kind:    KindStore,
		Action:  action,
		message: fmt.Sprintf("store operation failed for action %q: %s", action, cause.Error()),
		cause:   cause,
	}
}
