package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestReportKey(t *testing.T) {
	at := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		prefix string
		ext    string
		want   string
	}{
		{"reports", "csv", "reports/forecast-202406.csv"},
		{"/reports/monthly/", ".xlsx", "reports/monthly/forecast-202406.xlsx"},
		{"", "csv", "forecast-202406.csv"},
	}

	for _, tt := range tests {
		if got := ReportKey(tt.prefix, at, tt.ext); got != tt.want {
			t.Errorf("ReportKey(%q, %q) = %q, want %q", tt.prefix, tt.ext, got, tt.want)
		}
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		raw        string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{"localhost:9000", false, "localhost:9000", false},
		{"https://s3.example.com/", false, "s3.example.com", true},
		{"http://minio:9000", true, "minio:9000", false},
		{"storage.example.com", true, "storage.example.com", true},
	}

	for _, tt := range tests {
		host, secure := normalizeEndpoint(tt.raw, tt.useSSL)
		if host != tt.wantHost || secure != tt.wantSecure {
			t.Errorf("normalizeEndpoint(%q, %v) = %q, %v; want %q, %v", tt.raw, tt.useSSL, host, secure, tt.wantHost, tt.wantSecure)
		}
	}
}

func TestNewMinioClientValidatesConfig(t *testing.T) {
	configs := []MinioConfig{
		{AccessKey: "a", SecretKey: "b", Bucket: "c"},
		{Endpoint: "localhost:9000", Bucket: "c"},
		{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"},
	}
	for _, cfg := range configs {
		if _, err := NewMinioClient(cfg); err == nil {
			t.Errorf("NewMinioClient(%+v) accepted incomplete config", cfg)
		}
	}
}

type memoryStore struct {
	objects    []ObjectInfo
	listed     string
	downloaded map[string]string
}

func (m *memoryStore) ListObjects(_ context.Context, prefix string) ([]ObjectInfo, error) {
	m.listed = prefix
	var out []ObjectInfo
	for _, obj := range m.objects {
		if strings.HasPrefix(obj.Key, prefix) {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (m *memoryStore) DownloadObject(_ context.Context, key, destPath string) error {
	for _, obj := range m.objects {
		if obj.Key == key {
			m.downloaded[key] = destPath
			return nil
		}
	}
	return fmt.Errorf("storage download of %s failed: no such key", key)
}

func (m *memoryStore) UploadObject(_ context.Context, key string, data []byte, _ string) error {
	m.objects = append(m.objects, ObjectInfo{Key: key, Size: int64(len(data))})
	return nil
}

func TestListReports(t *testing.T) {
	store := &memoryStore{}
	ctx := context.Background()
	at := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	for _, key := range []string{
		ReportKey("reports", at, "csv"),
		ReportKey("reports", at.AddDate(0, 1, 0), "xlsx"),
		"reports/readme.txt",
		ReportKey("archive", at, "csv"),
	} {
		if err := store.UploadObject(ctx, key, []byte("x"), "text/csv"); err != nil {
			t.Fatalf("UploadObject(%s) error = %v", key, err)
		}
	}

	got, err := ListReports(ctx, store, "/reports/")
	if err != nil {
		t.Fatalf("ListReports() error = %v", err)
	}
	if store.listed != "reports/" {
		t.Errorf("listed prefix %q, want reports/", store.listed)
	}
	if len(got) != 2 || got[0].Key != "reports/forecast-202406.xlsx" || got[1].Key != "reports/forecast-202405.csv" {
		t.Errorf("ListReports() = %+v", got)
	}
}

func TestFetchReport(t *testing.T) {
	store := &memoryStore{
		objects:    []ObjectInfo{{Key: "reports/forecast-202406.csv", Size: 10}},
		downloaded: map[string]string{},
	}
	ctx := context.Background()

	dest, err := FetchReport(ctx, store, "reports", "forecast-202406.csv", "out")
	if err != nil {
		t.Fatalf("FetchReport() error = %v", err)
	}
	if want := filepath.Join("out", "forecast-202406.csv"); dest != want || store.downloaded["reports/forecast-202406.csv"] != want {
		t.Errorf("FetchReport() = %q, downloads %v", dest, store.downloaded)
	}

	if _, err := FetchReport(ctx, store, "reports", "../secrets.env", "out"); err == nil {
		t.Error("FetchReport accepted a name that is not a report")
	}
	if _, err := FetchReport(ctx, store, "reports", "forecast-199901.csv", "out"); err == nil {
		t.Error("FetchReport succeeded for a missing report")
	}
}
