package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newsdesk/config"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, "bookmarks"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := b.Set(ctx, "bookmarks", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set(ctx, "selectedCategory", `"sports"`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set(ctx, "bookmarks", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	v, ok, err := b.Get(ctx, "bookmarks")
	if err != nil || !ok || v != `[{"id":"a"}]` {
		t.Fatalf("Get(bookmarks) = %q, %v, %v", v, ok, err)
	}
	v, ok, err = b.Get(ctx, "selectedCategory")
	if err != nil || !ok || v != `"sports"` {
		t.Fatalf("Get(selectedCategory) = %q, %v, %v", v, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseBackend(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	exerciseBackend(t, s)

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.Get(context.Background(), "selectedCategory")
	if err != nil || !ok || v != `"sports"` {
		t.Fatalf("after reopen Get = %q, %v, %v", v, ok, err)
	}
}

func TestFileStoreEmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(empty); err != nil {
		t.Fatalf("empty file: %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(corrupt); err == nil {
		t.Fatal("corrupt file: want error")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		if strings.Contains(err.Error(), "CGO") || strings.Contains(err.Error(), "cgo") {
			t.Skipf("sqlite unavailable: %v", err)
		}
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	exerciseBackend(t, s)
}

type fakeObjects struct {
	objects map[string][]byte
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeObjects{objects: make(map[string][]byte)}
	s := newS3Store(fake, "bucket", "newsdesk/state")

	exerciseBackend(t, s)

	if _, ok := fake.objects["bucket/newsdesk/state/bookmarks.json"]; !ok {
		t.Fatalf("objects = %v; want bookmarks.json under prefix", fake.objects)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(&s3types.NoSuchKey{}) {
		t.Error("NoSuchKey not detected")
	}
	if isNotFound(errors.New("access denied")) {
		t.Error("plain error treated as not found")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), config.StorageConfig{Backend: "floppy"}); err == nil {
		t.Fatal("Open(floppy) = nil error")
	}
}

func TestOpenFileBackend(t *testing.T) {
	b, err := Open(context.Background(), config.StorageConfig{
		Backend: config.BackendFile,
		Path:    filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if _, ok := b.(*FileStore); !ok {
		t.Fatalf("Open returned %T; want *FileStore", b)
	}
}
