package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

func TestDefaultRegistry_Supports(t *testing.T) {
	registry := DefaultRegistry()

	for _, ext := range []string{".txt", ".md", ".html", ".docx"} {
		assert.True(t, registry.Supports(ext), "expected %s to be supported", ext)
	}
	assert.False(t, registry.Supports(".pdf"))
	assert.False(t, registry.Supports(".exe"))
}

func TestRegistry_ExtractFile_UnsupportedExtension(t *testing.T) {
	registry := DefaultRegistry()

	_, err := registry.ExtractFile("contract.xyz", []byte("data"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_ExtractFile_CaseInsensitiveExtension(t *testing.T) {
	registry := DefaultRegistry()

	result, err := registry.ExtractFile("Lease.TXT", []byte("terms apply"))
	require.NoError(t, err)
	assert.Equal(t, "terms apply", result.Text)
}

func TestPlaintext_Extract(t *testing.T) {
	result, err := NewPlaintext().Extract("rental_agreement.txt", []byte("  The tenant agrees...  \n"))

	require.NoError(t, err)
	assert.Equal(t, "rental agreement", result.Title)
	assert.Equal(t, "The tenant agrees...", result.Text)
}

func TestMarkdown_Extract(t *testing.T) {
	content := `# Loan Agreement

The **borrower** shall repay the [principal](https://example.com/terms).

- Interest rate: 5%
- Term: 36 months
`
	result, err := NewMarkdown().Extract("loan.md", []byte(content))

	require.NoError(t, err)
	assert.Equal(t, "Loan Agreement", result.Title)
	assert.Contains(t, result.Text, "The borrower shall repay the principal.")
	assert.Contains(t, result.Text, "Interest rate: 5%")
	assert.NotContains(t, result.Text, "**")
	assert.NotContains(t, result.Text, "example.com")
}

func TestMarkdown_Extract_TitleFromFilename(t *testing.T) {
	result, err := NewMarkdown().Extract("terms-of-service.md", []byte("no headings here"))

	require.NoError(t, err)
	assert.Equal(t, "terms of service", result.Title)
}

func TestHTML_Extract(t *testing.T) {
	content := `<html><head><title>Service Terms</title><style>p { color: red; }</style></head>
<body><script>alert("hi")</script><p>You agree to the following &amp; more:</p><p>Payment is due monthly.</p></body></html>`

	result, err := NewHTML().Extract("terms.html", []byte(content))

	require.NoError(t, err)
	assert.Equal(t, "Service Terms", result.Title)
	assert.Contains(t, result.Text, "You agree to the following & more:")
	assert.Contains(t, result.Text, "Payment is due monthly.")
	assert.NotContains(t, result.Text, "alert")
	assert.NotContains(t, result.Text, "color: red")
}

// createTestDocx creates a minimal valid DOCX file in memory.
func createTestDocx(t *testing.T, documentXML, coreXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	if coreXML != "" {
		core, err := w.Create("docProps/core.xml")
		require.NoError(t, err)
		_, err = core.Write([]byte(coreXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDocx_Extract(t *testing.T) {
	documentXML := `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<body>
<p><r><t>This Employment Agreement is made between the parties.</t></r></p>
<p><r><t>The employee shall receive </t></r><r><t>an annual salary.</t></r></p>
</body>
</document>`
	coreXML := `<?xml version="1.0"?>
<coreProperties><title>Employment Agreement</title></coreProperties>`

	result, err := NewDocx().Extract("agreement.docx", createTestDocx(t, documentXML, coreXML))

	require.NoError(t, err)
	assert.Equal(t, "Employment Agreement", result.Title)
	assert.Contains(t, result.Text, "This Employment Agreement is made between the parties.")
	assert.Contains(t, result.Text, "The employee shall receive an annual salary.")
}

func TestDocx_Extract_TitleFromFilename(t *testing.T) {
	documentXML := `<document><body><p><r><t>content</t></r></p></body></document>`

	result, err := NewDocx().Extract("side_letter.docx", createTestDocx(t, documentXML, ""))

	require.NoError(t, err)
	assert.Equal(t, "side letter", result.Title)
}

func TestDocx_Extract_InvalidArchive(t *testing.T) {
	_, err := NewDocx().Extract("broken.docx", []byte("not a zip"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
