package storagefactory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"keepsake/internal/config"
	"keepsake/internal/pkg/storage"
)

func TestNewStorage_Local(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr bool
	}{
		{
			name: "valid local storage config",
			cfg: &config.StorageConfig{
				Type: "local",
				Local: &config.LocalConfig{
					BasePath:      tmpDir,
					BaseURL:       "http://localhost:8080/storage",
					PresignExpiry: 3600,
				},
			},
			wantErr: false,
		},
		{
			name:    "missing local config",
			cfg:     &config.StorageConfig{Type: "local"},
			wantErr: true,
		},
		{
			name:    "missing oss config",
			cfg:     &config.StorageConfig{Type: "oss"},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			cfg:     &config.StorageConfig{Type: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStorage(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStorage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && st.GetStorageType() != string(storage.StorageTypeLocal) {
				t.Errorf("GetStorageType() = %v, want %v", st.GetStorageType(), storage.StorageTypeLocal)
			}
		})
	}
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	st, err := NewStorage(ctx, &config.StorageConfig{
		Type: "local",
		Local: &config.LocalConfig{
			BasePath:      tmpDir,
			BaseURL:       "http://localhost:8080/storage",
			PresignExpiry: 3600,
		},
	})
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}

	key := storage.PhotoKey("proj_1", "photo_1", ".jpg")
	content := []byte("fake jpeg bytes")

	if _, err := st.Upload(ctx, key, bytes.NewReader(content), "image/jpeg"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	exists, err := st.Exists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v, want true", exists, err)
	}

	rc, err := st.Download(ctx, key)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Download() content mismatch: got %q", got)
	}

	// 删除项目前缀后文件应消失
	if err := st.DeletePrefix(ctx, storage.ProjectPrefix("proj_1")); err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}
	exists, err = st.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Errorf("Exists() = true after DeletePrefix")
	}
}
