package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/i18n"
)

func disableColor(t *testing.T) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
}

func TestHandleAppError(t *testing.T) {
	disableColor(t)

	t.Run("should print type, details, context and suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrUnsupportedFormat.
			WithContext("path", "talks.csv").
			WithContext("extension", ".csv")

		HandleAppError(&buf, err, nil)

		out := buf.String()
		assert.Contains(t, out, "❌ UNSUPPORTED_FORMAT: unsupported file format")
		assert.Contains(t, out, "   extension: .csv\n   path: talks.csv\n")
		assert.Contains(t, out, "💡 Try: Export the sheet as .tsv or .xlsx")
		assert.NotContains(t, out, "Details")
	})

	t.Run("should print the underlying error", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, domainErrors.ErrListIssues.WithError(errors.New("connection refused")), nil)

		assert.Contains(t, buf.String(), "   Details: connection refused")
	})

	t.Run("should translate labels", func(t *testing.T) {
		trans, err := i18n.NewTranslations("es")
		require.NoError(t, err)
		var buf bytes.Buffer

		HandleAppError(&buf, domainErrors.ErrWriteDebug.WithError(errors.New("denied")), trans)

		assert.Contains(t, buf.String(), "Detalles: denied")
		assert.Contains(t, buf.String(), "💡 Probá: ")
	})

	t.Run("should print plain errors", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, errors.New("boom"), nil)

		assert.Equal(t, "❌ boom\n", buf.String())
	})

	t.Run("should ignore nil", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, nil, nil)

		assert.Empty(t, buf.String())
	})
}

func TestPrintHelpers(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer

	PrintKeyValue(&buf, "#12", "Go at scale")
	PrintWarning(&buf, "careful")

	assert.Equal(t, "   #12: Go at scale\n"+WarningEmoji+" careful\n", buf.String())
}

func TestWithSpinner(t *testing.T) {
	disableColor(t)

	t.Run("should report success", func(t *testing.T) {
		var buf bytes.Buffer

		err := WithSpinner(&buf, "working", "done", func() error { return nil })

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "done (")
	})

	t.Run("should return the error untouched", func(t *testing.T) {
		var buf bytes.Buffer
		want := errors.New("boom")

		err := WithSpinner(&buf, "working", "done", func() error { return want })

		assert.Equal(t, want, err)
		assert.Empty(t, buf.String())
	})
}
