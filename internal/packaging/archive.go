// Package packaging bundles rendered plugin documents into a zip archive.
package packaging

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/MrSnakeDoc/forge/internal/artifact"
)

// modTime is stamped on every entry so identical documents give identical bytes.
var modTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// directories created under the plugin root, parents first.
var directories = []string{"includes", "assets", "assets/css", "assets/js"}

// Filename is the download name of the archive.
func Filename(slug string) string {
	return slug + ".zip"
}

// Build writes the plugin tree rooted at slug/:
//
//	<slug>/<slug>.php
//	<slug>/uninstall.php
//	<slug>/README.txt
//	<slug>/includes/admin-settings.php
//	<slug>/includes/shortcode.php
//	<slug>/assets/css/style.css
//	<slug>/assets/js/script.js
func Build(docs artifact.Documents, slug string) ([]byte, error) {
	if slug == "" {
		return nil, fmt.Errorf("empty plugin slug")
	}

	files, err := layout(docs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addDir(zw, slug); err != nil {
		return nil, err
	}
	for _, dir := range directories {
		if err := addDir(zw, path.Join(slug, dir)); err != nil {
			return nil, err
		}
	}
	for _, doc := range files {
		if err := addFile(zw, path.Join(slug, doc.Path), doc.Content); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// layout orders the documents the way they appear in the archive and adds
// the static stubs.
func layout(docs artifact.Documents) ([]artifact.Document, error) {
	get := func(name string) (artifact.Document, error) {
		doc, ok := docs.Get(name)
		if !ok {
			return artifact.Document{}, fmt.Errorf("missing %s document", name)
		}
		return doc, nil
	}

	manifest, err := get(artifact.Manifest)
	if err != nil {
		return nil, err
	}
	readme, err := get(artifact.Readme)
	if err != nil {
		return nil, err
	}

	out := make([]artifact.Document, 0, len(docs)+2)
	out = append(out, manifest, artifact.UninstallStub(), readme, artifact.AdminSettingsStub())

	for _, name := range []string{artifact.Shortcode, artifact.Stylesheet, artifact.Script} {
		doc, err := get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func addDir(zw *zip.Writer, name string) error {
	hdr := &zip.FileHeader{Name: name + "/", Method: zip.Store, Modified: modTime}
	hdr.SetMode(fs.ModeDir | 0o755)
	if _, err := zw.CreateHeader(hdr); err != nil {
		return fmt.Errorf("failed to add directory %s: %w", name, err)
	}
	return nil
}

func addFile(zw *zip.Writer, name, content string) error {
	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modTime}
	hdr.SetMode(0o644)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
