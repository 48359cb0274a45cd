package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/internal/storage"
)

// ValidationFieldHeader carries the offending request field on invalid_argument errors.
const ValidationFieldHeader = "X-Validation-Field"

var errInternal = errors.New("internal error")

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest validates the struct tags of a request message.
func checkRequest(m *metrics.Metrics, msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	first := fieldErrs[0]
	m.ValidationFailed("request")
	return invalidArgument(
		fmt.Errorf("%s failed %q check", first.Namespace(), first.Tag()),
		jsonPath(first.Namespace()),
	)
}

// jsonPath turns a validator namespace such as "CreateTripRequest.Members[0].ID"
// into the wire field path "members[0].id".
func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p == "" {
			continue
		}
		if p == "ID" || strings.HasPrefix(p, "ID[") {
			parts[i] = "id" + strings.TrimPrefix(p, "ID")
			continue
		}
		if strings.HasSuffix(p, "ID") {
			p = strings.TrimSuffix(p, "ID") + "Id"
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}

func invalidArgument(err error, field string) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	if field != "" {
		connectErr.Meta().Set(ValidationFieldHeader, field)
	}
	return connectErr
}

// ledgerError maps an engine failure to a Connect error. Validation failures
// are counted and returned to the caller; anything else is logged and hidden.
func ledgerError(m *metrics.Metrics, op string, err error, attrs ...any) *connect.Error {
	if calculator.IsValidationError(err) {
		m.ValidationFailed(validationReason(err))
		slog.Warn(op+" rejected", append(attrs, "error", err)...)
		return invalidArgument(err, calculator.FieldOf(err))
	}
	if errors.Is(err, calculator.ErrInconsistentLedger) {
		slog.Error(op+" found an inconsistent ledger", append(attrs, "error", err)...)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
	return storageError(op, err, attrs...)
}

// storageError maps a store failure to not_found or a logged internal error.
func storageError(op string, err error, attrs ...any) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn(op+" failed", append(attrs, "error", err)...)
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", append(attrs, "error", err)...)
	return connect.NewError(connect.CodeInternal, errInternal)
}

func validationReason(err error) string {
	var (
		mismatchErr *calculator.SplitMismatchError
		unknownErr  *calculator.UnknownMemberError
	)
	switch {
	case errors.As(err, &mismatchErr):
		return "split_mismatch"
	case errors.As(err, &unknownErr):
		return "unknown_member"
	case errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrLedgerTooLarge),
		errors.Is(err, money.ErrOutOfRange):
		return "invalid_amount"
	case errors.Is(err, calculator.ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, calculator.ErrInvalidSplitType):
		return "invalid_split_type"
	case errors.Is(err, calculator.ErrEmptySplits):
		return "empty_splits"
	case errors.Is(err, calculator.ErrNegativeSplit):
		return "negative_split"
	case errors.Is(err, calculator.ErrDuplicateSplit):
		return "duplicate_split"
	case errors.Is(err, calculator.ErrNoMembers), errors.Is(err, calculator.ErrDuplicateMember):
		return "invalid_roster"
	default:
		return "other"
	}
}
