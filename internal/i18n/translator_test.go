package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

func TestTranslateResolvesLanguage(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Email or password wrong", tr.Translate("", shared.MsgAuthError))
	assert.Equal(t, "E-post eller passord er feil", tr.Translate("no", shared.MsgAuthError))
	assert.Equal(t, "email field must be filled", tr.Translate("en-GB", shared.MsgFieldRequired, "email"))
	assert.Equal(t, "Email or password wrong", tr.Translate("xx-invalid-", shared.MsgAuthError))
}

func TestTranslateFallsBackToEnglishText(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Partial Update!", tr.Translate("no", shared.MsgPartialApply))
}

func TestTranslateUnknownKeyVerbatim(t *testing.T) {
	tr, err := New("no")
	require.NoError(t, err)

	assert.Equal(t, "Some literal message", tr.Translate("", "Some literal message"))
	assert.Equal(t, "no", tr.Language(""))
}
