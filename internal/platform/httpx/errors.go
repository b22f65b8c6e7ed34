package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Translator renders message keys for a language.
type Translator interface {
	Translate(lang, key string, args ...any) string
}

// Status maps an error onto its HTTP status.
func Status(err error) int {
	var classified *shared.Error
	if errors.As(err, &classified) && classified.Code != 0 {
		return classified.Code
	}
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Describe renders the user-facing body for err in lang.
func Describe(tr Translator, lang string, err error) ErrorBody {
	var classified *shared.Error
	if errors.As(err, &classified) {
		return ErrorBody{
			Msg:         tr.Translate(lang, classified.Msg),
			Description: tr.Translate(lang, classified.Description, classified.Args...),
		}
	}
	switch {
	case errors.Is(err, shared.ErrPartialApply):
		return ErrorBody{Msg: tr.Translate(lang, shared.MsgPartialApply), Description: tr.Translate(lang, shared.MsgPartialApplyDesc)}
	case errors.Is(err, shared.ErrConflict):
		return ErrorBody{Msg: tr.Translate(lang, shared.MsgAlreadyExists), Description: tr.Translate(lang, shared.MsgAlreadyExists)}
	case errors.Is(err, shared.ErrNotFound):
		return ErrorBody{Msg: tr.Translate(lang, shared.MsgNotFound), Description: tr.Translate(lang, shared.MsgNotFound)}
	case errors.Is(err, shared.ErrUnauthorized):
		return ErrorBody{Msg: tr.Translate(lang, shared.MsgUnauthorized), Description: tr.Translate(lang, shared.MsgUnauthorized)}
	default:
		return ErrorBody{Msg: tr.Translate(lang, shared.MsgUnknownError), Description: tr.Translate(lang, shared.MsgUnknownError)}
	}
}

// RespondError maps domain errors to the failure envelope.
func RespondError(w http.ResponseWriter, tr Translator, lang string, err error) {
	Failure(w, Status(err), Describe(tr, lang, err))
}
