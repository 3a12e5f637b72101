package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/devlegal/internal/config"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func buildFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	t.Cleanup(func() {
		_ = form.RemoveAll()
	})
	files := form.File[field]
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	return files[0]
}

func newTestUploadService(t *testing.T) *UploadService {
	t.Helper()
	return NewUploadService(config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 10})
}

func TestUploadServiceExtensionAndSizeRules(t *testing.T) {
	svc := newTestUploadService(t)

	cases := []struct {
		name     string
		filename string
		size     int
		kind     UploadKind
		wantErr  error
	}{
		{name: "exe rejected", filename: "tool.exe", size: 10, kind: UploadKindDocument, wantErr: ErrFileTypeNotAllowed},
		{name: "pdf accepted", filename: "brief.PDF", size: 1024, kind: UploadKindDocument},
		{name: "pdf over limit", filename: "big.pdf", size: 11 << 20, kind: UploadKindDocument, wantErr: ErrFileTooLarge},
		{name: "no extension", filename: "README", size: 10, kind: UploadKindGeneral, wantErr: ErrFileTypeNotAllowed},
		{name: "image refused for documents", filename: "a.png", size: 10, kind: UploadKindDocument, wantErr: ErrFileTypeNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := buildFileHeader(t, "document", tc.filename, bytes.Repeat([]byte("a"), tc.size))
			stored, err := svc.Save(header, "document", tc.kind)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("save failed: %v", err)
			}
			if stored.OriginalName != tc.filename || stored.Size != int64(tc.size) {
				t.Fatalf("unexpected stored file: %+v", stored)
			}
		})
	}
}

func TestUploadServiceFilenameScheme(t *testing.T) {
	svc := newTestUploadService(t)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	stored, err := svc.Save(buildFileHeader(t, "file", "Photo.PNG", pngHeader), "file", UploadKindGeneral)
	if err != nil {
		t.Fatalf("save image failed: %v", err)
	}
	if !regexp.MustCompile(`^file-1700000000123-\d{1,9}\.png$`).MatchString(stored.Name) {
		t.Fatalf("unexpected filename: %s", stored.Name)
	}
	if stored.URL != "/uploads/"+stored.Name {
		t.Fatalf("unexpected url: %s", stored.URL)
	}
	if _, err := os.Stat(filepath.Join(svc.Dir(), stored.Name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestUploadServiceRejectsFakeImage(t *testing.T) {
	svc := newTestUploadService(t)
	if _, err := svc.Save(buildFileHeader(t, "file", "evil.png", []byte("<html>not an image</html>")), "file", UploadKindGeneral); !errors.Is(err, ErrFileTypeNotAllowed) {
		t.Fatalf("expected ErrFileTypeNotAllowed, got %v", err)
	}
	if _, err := svc.Save(nil, "file", UploadKindGeneral); !errors.Is(err, ErrFileRequired) {
		t.Fatalf("expected ErrFileRequired, got %v", err)
	}
}

func TestUploadServiceListAndDelete(t *testing.T) {
	svc := newTestUploadService(t)

	empty := NewUploadService(config.UploadConfig{Dir: filepath.Join(t.TempDir(), "missing")})
	files, err := empty.ListDocuments()
	if err != nil || len(files) != 0 {
		t.Fatalf("missing dir must list empty, got %v err=%v", files, err)
	}

	older, err := svc.Save(buildFileHeader(t, "document", "a.txt", []byte("one")), "document", UploadKindDocument)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	newer, err := svc.Save(buildFileHeader(t, "document", "b.csv", []byte("two")), "document", UploadKindDocument)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(svc.Dir(), older.Name), past, past); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	files, err = svc.ListDocuments()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(files) != 2 || files[0].Name != newer.Name || files[1].Name != older.Name {
		t.Fatalf("expected newest first, got %+v", files)
	}

	for _, name := range []string{"../secret", "..", "a/b.txt", `a\b.txt`, ""} {
		if err := svc.Delete(name); !errors.Is(err, ErrInvalidFilename) {
			t.Fatalf("expected ErrInvalidFilename for %q, got %v", name, err)
		}
	}
	if err := svc.Delete("nothing.pdf"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
	if err := svc.Delete(older.Name); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(older.Name); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound after delete, got %v", err)
	}
}
