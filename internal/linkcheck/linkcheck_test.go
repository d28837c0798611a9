package linkcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVerifyHTML(t *testing.T) {
	out := t.TempDir()
	writeFile(t, filepath.Join(out, "cmdlets", "Get-A.html"), "<html></html>")

	summary := filepath.Join(out, "Demo.html")
	writeFile(t, summary, `<html><body><ul>
<li><a href="cmdlets/Get-A.html">Get-A</a></li>
<li><a href="cmdlets/Get-Missing.html">Get-Missing</a></li>
<li><a href="https://example.com/elsewhere">external</a></li>
<li><a href="#top">fragment</a></li>
</ul></body></html>`)

	broken, err := VerifyHTML(summary, out)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "cmdlets/Get-Missing.html", broken[0].URL)
}

func TestVerifyMarkdown(t *testing.T) {
	out := t.TempDir()
	writeFile(t, filepath.Join(out, "cmdlets", "Get-A.html"), "<html></html>")

	readme := filepath.Join(out, "README.md")
	writeFile(t, readme, `# Demo

- [Get-A](https://example.com/docs/cmdlets/Get-A.html): ok
- [Get-Missing](https://example.com/docs/cmdlets/Get-Missing.html): broken
- [Elsewhere](https://other.example.com/page.html): skipped
`)

	broken, err := VerifyMarkdown(readme, out, "https://example.com/docs")
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "https://example.com/docs/cmdlets/Get-Missing.html", broken[0].URL)
}

func TestVerifyMarkdownWithoutBaseURL(t *testing.T) {
	out := t.TempDir()
	readme := filepath.Join(out, "README.md")
	writeFile(t, readme, "- [x](https://example.com/x.html)\n")

	broken, err := VerifyMarkdown(readme, out, "")
	require.NoError(t, err)
	require.Empty(t, broken)
}

func TestVerifyHTMLMissingFile(t *testing.T) {
	_, err := VerifyHTML(filepath.Join(t.TempDir(), "nope.html"), t.TempDir())
	require.Error(t, err)
}
