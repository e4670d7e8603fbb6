package xl

import (
	"testing"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	assert.Equal(t, "83AF", PasswordHash("password"))
	assert.Equal(t, "CE4B", PasswordHash(""))
}

func TestProtect(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.Protect("", nil))
	assert.Contains(t, sheetXML(t, w), `<sheetData/><sheetProtection sheet="1" objects="1" scenarios="1"/>`)

	require.NoError(t, w.Protect("password", &ProtectOptions{
		FormatCells:         true,
		InsertRows:          true,
		NoSelectLockedCells: true,
	}))
	assert.Contains(t, sheetXML(t, w),
		`<sheetProtection password="83AF" sheet="1" objects="1" scenarios="1" formatCells="0" insertRows="0" selectLockedCells="1"/>`)

	require.NoError(t, w.Protect("", &ProtectOptions{Objects: true, Scenarios: true, Sort: true}))
	assert.Contains(t, sheetXML(t, w), `<sheetProtection sheet="1" sort="0"/>`)
}

func TestIgnoreErrors(t *testing.T) {
	w, _ := newSheet(t, nil)
	require.NoError(t, w.IgnoreErrors(IgnoreEvalError, "C3"))
	require.NoError(t, w.IgnoreErrors(IgnoreNumberStoredAsText, "A1:B5"))
	require.NoError(t, w.IgnoreErrors(IgnoreNumberStoredAsText, "D7"))
	assert.Contains(t, sheetXML(t, w),
		`<ignoredErrors>`+
			`<ignoredError sqref="A1:B5 D7" numberStoredAsText="1"/>`+
			`<ignoredError sqref="C3" evalError="1"/>`+
			`</ignoredErrors></worksheet>`)

	assert.True(t, ooxml.ErrNullParameter.Is(w.IgnoreErrors(IgnoreFormulaRange, " ")))
	assert.Error(t, w.IgnoreErrors(IgnoreKind(42), "A1"))
}
