package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	input := filepath.Join(dir, "input.css")
	if err := os.WriteFile(input, []byte("@tailwind utilities;"), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "pages"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "pages", "index.html"), []byte(`<p class="p-4">`), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("input.css", input)
	r.StoreData("candidates.txt", []byte("p-4\n"))
	if err := r.StoreCopy("content", src); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if err := r.StoreCopy("input-snapshot.css", input); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	// snapshot must not follow later changes, stored path must
	if err := os.WriteFile(input, []byte("@tailwind base;"), 0644); err != nil {
		t.Fatal(err)
	}
	temps := append([]string(nil), r.temps...)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	for name, want := range map[string]string{
		"input.css":                "@tailwind base;",
		"candidates.txt":           "p-4\n",
		"content/pages/index.html": `<p class="p-4">`,
	} {
		if got, ok := files[name]; !ok || got != want {
			t.Errorf("archive[%s] = %q (present %v), want %q", name, got, ok, want)
		}
	}
	if got := files["input-snapshot.css"]; got != "@tailwind utilities;" {
		t.Errorf("snapshot = %q, want content at the time of StoreCopy", got)
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"input.css", "candidates.txt", "content", "input-snapshot.css"} {
		if !strings.Contains(manifest, "\t"+name+"\t") {
			t.Errorf("MANIFEST does not list %s:\n%s", name, manifest)
		}
	}

	for _, d := range temps {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			t.Errorf("temporary copy %s was not removed", d)
		}
	}
	if _, err := os.Stat(input); err != nil {
		t.Errorf("stored file should not be removed: %v", err)
	}
}

func TestReport_StoreCopyVersionsNames(t *testing.T) {
	dir := t.TempDir()
	r, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	file := filepath.Join(dir, "out.css")
	if err := os.WriteFile(file, []byte(".p-4{}"), 0644); err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for range 4 {
		wg.Go(func() {
			if err := r.StoreCopy("out.css", file); err != nil {
				t.Errorf("StoreCopy() error: %v", err)
			}
		})
	}
	wg.Wait()

	if len(r.entries) != 4 {
		t.Errorf("entries = %d, want 4 versioned copies", len(r.entries))
	}
}

func TestReport_StoreDataDuplicatePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate data entry")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name on nil report = %q", r.Name())
	}
	if err := (&Report{}).Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
