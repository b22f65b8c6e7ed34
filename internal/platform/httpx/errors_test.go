package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

type echoTranslator struct{}

func (echoTranslator) Translate(_ string, key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return key + fmt.Sprint(args...)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{shared.RequiredField("email"), http.StatusBadRequest},
		{shared.UnauthorizedError(shared.ErrInvalidToken, shared.MsgInvalidToken), http.StatusUnauthorized},
		{shared.ForbiddenError(shared.PermUserView), http.StatusForbidden},
		{shared.NotFoundError("Role", 4), http.StatusNotFound},
		{fmt.Errorf("insert: %w", shared.ConflictError()), http.StatusConflict},
		{fmt.Errorf("apply: %w", shared.ErrPartialApply), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{&shared.Error{Kind: shared.ErrValidation, Code: http.StatusUnauthorized}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, echoTranslator{}, "en", shared.ForbiddenError(shared.PermRoleAdd))

	require.Equal(t, http.StatusForbidden, rec.Code)
	var body struct {
		Code  int       `json:"code"`
		Error ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusForbidden, body.Code)
	assert.Equal(t, shared.MsgUnauthorized, body.Error.Msg)
	assert.Equal(t, shared.MsgNeedPermissions+shared.PermRoleAdd, body.Error.Description)
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, echoTranslator{}, "", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestSuccessKeepsZeroData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, 0)
	assert.JSONEq(t, `{"code":200,"data":0}`, rec.Body.String())
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var target map[string]any
	err := DecodeJSON(req, &target)
	assert.ErrorIs(t, err, shared.ErrValidation)
}
