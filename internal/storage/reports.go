package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

const reportNamePrefix = "forecast-"

// ListReports returns the exported forecast reports under prefix, newest
// month first. Other objects sharing the prefix are skipped.
func ListReports(ctx context.Context, store ObjectStorage, prefix string) ([]ObjectInfo, error) {
	objects, err := store.ListObjects(ctx, listPrefix(prefix))
	if err != nil {
		return nil, err
	}

	reports := make([]ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		if strings.HasPrefix(path.Base(obj.Key), reportNamePrefix) {
			reports = append(reports, obj)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return path.Base(reports[i].Key) > path.Base(reports[j].Key)
	})
	return reports, nil
}

// FetchReport downloads the report called name, e.g. forecast-202406.csv,
// into destDir and returns the local path.
func FetchReport(ctx context.Context, store ObjectStorage, prefix, name, destDir string) (string, error) {
	name = path.Base(strings.TrimSpace(name))
	if !strings.HasPrefix(name, reportNamePrefix) {
		return "", fmt.Errorf("%q is not a forecast report name", name)
	}

	key := name
	if p := strings.Trim(prefix, "/"); p != "" {
		key = path.Join(p, name)
	}

	dest := filepath.Join(destDir, name)
	if err := store.DownloadObject(ctx, key, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func listPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
