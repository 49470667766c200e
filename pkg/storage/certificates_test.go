package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("certificate", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["certificate"][0]
}

func TestCertificateStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCertificateStore(dir, 1024, []string{"pdf", "png", "jpg", "jpeg"})
	require.NoError(t, err)

	path, err := store.Save(newFileHeader(t, "certificate.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, ".pdf"))
	require.Equal(t, filepath.Base(dir), strings.SplitN(path, "/", 2)[0])

	data, err := os.ReadFile(store.Path(path))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4"), data)
}

func TestCertificateStoreSaveUniqueNames(t *testing.T) {
	store, err := NewCertificateStore(t.TempDir(), 0, []string{"pdf"})
	require.NoError(t, err)

	first, err := store.Save(newFileHeader(t, "same.pdf", []byte("a")))
	require.NoError(t, err)
	second, err := store.Save(newFileHeader(t, "same.pdf", []byte("b")))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestCertificateStoreRejectsExtension(t *testing.T) {
	store, err := NewCertificateStore(t.TempDir(), 1024, []string{"pdf", "png", "jpg", "jpeg"})
	require.NoError(t, err)

	_, err = store.Save(newFileHeader(t, "malware.exe", []byte("MZ")))
	require.ErrorIs(t, err, ErrExtensionNotAllowed)

	_, err = store.Save(newFileHeader(t, "noextension", []byte("data")))
	require.ErrorIs(t, err, ErrExtensionNotAllowed)
}

func TestCertificateStoreRejectsOversized(t *testing.T) {
	store, err := NewCertificateStore(t.TempDir(), 4, []string{"pdf"})
	require.NoError(t, err)

	_, err = store.Save(newFileHeader(t, "big.pdf", []byte("12345")))
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestCertificateStoreOpenStripsDirectories(t *testing.T) {
	store, err := NewCertificateStore(t.TempDir(), 0, []string{"pdf"})
	require.NoError(t, err)

	recorded, err := store.Save(newFileHeader(t, "cert.pdf", []byte("x")))
	require.NoError(t, err)

	file, err := store.Open(recorded)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, err = store.Open("../../etc/passwd")
	require.Error(t, err)
}

func TestCertificateStoreFailedSaveLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCertificateStore(dir, 0, []string{"pdf"})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("certificate", "cert.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Spill the upload to a temp file, then drop it so reading the
	// source fails partway through Save.
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1)
	require.NoError(t, err)
	fh := form.File["certificate"][0]
	require.NoError(t, form.RemoveAll())

	_, err = store.Save(fh)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "failed save must not leave files behind")
}

func TestCertificateStoreDeleteIdempotent(t *testing.T) {
	store, err := NewCertificateStore(t.TempDir(), 0, []string{"pdf"})
	require.NoError(t, err)

	recorded, err := store.Save(newFileHeader(t, "cert.pdf", []byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(recorded))
	require.NoError(t, store.Delete(recorded))
}
