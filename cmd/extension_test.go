package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestKnown(t *testing.T) {
	for _, name := range []string{"add", "holding", "serve", "topic", "help"} {
		if !Known(name) {
			t.Errorf("Known(%q) = false, want true", name)
		}
	}
	if Known("hello") {
		t.Error("Known(\"hello\") = true, want false")
	}
}

func TestExtensionEnv(t *testing.T) {
	store, quotes, cur := "sqlite:/tmp/x.db", "eodhd", "EUR"
	defer func(s, q, c *string) { storeURI, quotesProvider, currency = s, q, c }(storeURI, quotesProvider, currency)
	storeURI, quotesProvider, currency = &store, &quotes, &cur

	got := extensionEnv()
	for _, want := range []string{
		"INVEST_STORE=sqlite:/tmp/x.db",
		"INVEST_QUOTES=eodhd",
		"INVEST_CURRENCY=EUR",
		"INVEST_VERBOSE=false",
	} {
		if !slices.Contains(got, want) {
			t.Errorf("extensionEnv() = %q, missing %q", got, want)
		}
	}
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts here")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\n[ \"$INVEST_STORE\" = \"memory:\" ] || exit 3\nexit $1\n"
	if err := os.WriteFile(filepath.Join(dir, "invest-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh")
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	store := "memory:"
	defer func(s *string) { storeURI = s }(storeURI)
	storeURI = &store

	if ok, code := RunExtension("hello", []string{"0"}); !ok || code != 0 {
		t.Errorf("RunExtension(hello 0) = %v, %d, want true, 0", ok, code)
	}
	if ok, code := RunExtension("hello", []string{"5"}); !ok || code != 5 {
		t.Errorf("RunExtension(hello 5) = %v, %d, want true, 5", ok, code)
	}
	if ok, _ := RunExtension("nope", nil); ok {
		t.Error("RunExtension(nope) = true, want false")
	}
}
