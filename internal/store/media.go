package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	supa "github.com/supabase-community/supabase-go"
)

// LocalMediaStore writes uploaded media under a local directory. The
// default when no Supabase storage bucket is configured.
type LocalMediaStore struct {
	Dir string
}

func (l *LocalMediaStore) Save(path string, r io.Reader) (string, error) {
	full := filepath.Join(l.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return full, nil
}

// SupabaseMediaStore uploads media to a Supabase storage bucket.
type SupabaseMediaStore struct {
	Client *supa.Client
	Bucket string
}

func (s *SupabaseMediaStore) Save(path string, r io.Reader) (string, error) {
	if _, err := s.Client.Storage.UploadFile(s.Bucket, path, r); err != nil {
		return "", fmt.Errorf("failed to upload media to bucket %q: %w", s.Bucket, err)
	}
	return fmt.Sprintf("%s/%s", s.Bucket, path), nil
}
