package image

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bereschoon_backend/pkg/utils/validation"

	"go.uber.org/zap"
)

type Result struct {
	Optimized []string
	Copied    []string
}

// OptimizeDir converts every supported image in inputDir to WebP in
// outputDir, under the source file name unless opts.RenameToWebP is set.
// Files that fail to convert are copied over unchanged.
func OptimizeDir(inputDir, outputDir string, opts Options, log *zap.Logger) (Result, error) {
	var res Result

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return res, fmt.Errorf("read input dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !validation.IsImageFilename(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	log.Info("found images", zap.Int("count", len(names)), zap.String("input_dir", inputDir))

	for _, name := range names {
		inputPath := filepath.Join(inputDir, name)

		if err := optimizeFile(inputPath, filepath.Join(outputDir, outputName(name, opts)), opts); err != nil {
			log.Warn("failed to optimize, copying original", zap.String("file", name), zap.Error(err))
			if err := copyFile(inputPath, filepath.Join(outputDir, name)); err != nil {
				return res, fmt.Errorf("copy %s: %w", name, err)
			}
			res.Copied = append(res.Copied, name)
			continue
		}
		res.Optimized = append(res.Optimized, name)
	}

	return res, nil
}

func optimizeFile(inputPath, outputPath string, opts Options) error {
	src, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	buf, err := ToWebP(src, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, buf.Bytes(), 0o644)
}

func outputName(name string, opts Options) string {
	if !opts.RenameToWebP {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
