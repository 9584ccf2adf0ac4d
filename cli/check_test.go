package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

// writeProject lays out a config file and an asset tree in dir and returns
// the config path.
func writeProject(t *testing.T, dir string, withStylesheet bool) string {
	t.Helper()
	assets := filepath.Join(dir, "assets")
	if err := os.MkdirAll(filepath.Join(assets, "css"), 0755); err != nil {
		t.Fatal(err)
	}
	if withStylesheet {
		if err := os.WriteFile(filepath.Join(assets, "css", "style.css"), []byte("body { margin: 0; }\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	configPath := filepath.Join(dir, "blog.config.yml")
	config := "title: Test Blog\nassetsDir: " + assets + "\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func newTestApp(cmd *cli.Command) *cli.App {
	return &cli.App{
		Commands:       []*cli.Command{cmd},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}
}

func TestCheckCommand_AllPagesRender(t *testing.T) {
	configPath := writeProject(t, t.TempDir(), true)

	var err error
	output := captureOutput(func() {
		err = newTestApp(CheckCommand).Run([]string{"blog", "check", "--config", configPath})
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(output, "✅ /") {
		t.Errorf("expected index route to pass, got:\n%s", output)
	}
	if !strings.Contains(output, "All pages rendered successfully.") {
		t.Errorf("expected success message, got:\n%s", output)
	}
}

func TestCheckCommand_MissingStylesheet(t *testing.T) {
	configPath := writeProject(t, t.TempDir(), false)

	var err error
	output := captureOutput(func() {
		err = newTestApp(CheckCommand).Run([]string{"blog", "check", "--config", configPath})
	})

	exitErr, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("expected an exit error, got: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(output, "not found") {
		t.Errorf("expected missing stylesheet report, got:\n%s", output)
	}
	if strings.Contains(output, "All pages rendered successfully.") {
		t.Errorf("did not expect success message, got:\n%s", output)
	}
}

func TestCheckCommand_BadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "blog.config.yml")
	if err := os.WriteFile(configPath, []byte("title: [broken\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := newTestApp(CheckCommand).Run([]string{"blog", "check", "--config", configPath})
	if err == nil {
		t.Fatal("expected a config error")
	}
}

func TestStylesheetFile(t *testing.T) {
	cases := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"/assets/css/style.css", filepath.Join("static", "css", "style.css"), true},
		{"https://cdn.example.com/style.css", "", false},
		{"/style.css", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.href, func(t *testing.T) {
			got, ok := stylesheetFile(configWith(tc.href, "static"))
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("stylesheetFile(%q) = %q, %v; want %q, %v", tc.href, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestCheckCommand_MissingIndexMarkdown(t *testing.T) {
	dir := t.TempDir()
	configPath := writeProject(t, dir, true)
	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("indexMarkdown: " + filepath.Join(dir, "index.md") + "\n")
	f.Close()

	output := captureOutput(func() {
		err = newTestApp(CheckCommand).Run([]string{"blog", "check", "--config", configPath})
	})

	if _, ok := err.(cli.ExitCoder); !ok {
		t.Fatalf("expected an exit error, got: %v", err)
	}
	if !strings.Contains(output, "index markdown") {
		t.Errorf("expected the markdown failure to be reported, got:\n%s", output)
	}
}

func TestCheckCommand_RendersIndexMarkdown(t *testing.T) {
	dir := t.TempDir()
	configPath := writeProject(t, dir, true)
	mdPath := filepath.Join(dir, "index.md")
	if err := os.WriteFile(mdPath, []byte("# Hi\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("indexMarkdown: " + mdPath + "\n")
	f.Close()

	output := captureOutput(func() {
		err = newTestApp(CheckCommand).Run([]string{"blog", "check", "--config", configPath})
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(output, "All pages rendered successfully.") {
		t.Errorf("expected success message, got:\n%s", output)
	}
}
