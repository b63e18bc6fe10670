package main

import (
	"flag"

	"bereschoon_backend/pkg/config"
	"bereschoon_backend/pkg/logger"
	"bereschoon_backend/pkg/utils/image"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	inputDir := flag.String("in", "public/images", "directory with source images")
	outputDir := flag.String("out", "public/images_optimized", "directory the WebP files are written to")
	maxWidth := flag.Int("max-width", image.MaxWidth, "images wider than this are scaled down")
	quality := flag.Float64("quality", image.DefaultQuality, "WebP quality, 0 to 100")
	rename := flag.Bool("webp-ext", false, "write <name>.webp instead of keeping the source file name")
	flag.Parse()

	log := logger.Must(cfg.Env)
	defer log.Sync()

	res, err := image.OptimizeDir(*inputDir, *outputDir, image.Options{
		MaxWidth:     *maxWidth,
		Quality:      float32(*quality),
		RenameToWebP: *rename,
	}, log)
	if err != nil {
		log.Fatal("image optimization failed", zap.Error(err))
	}

	log.Info("image optimization complete",
		zap.Int("optimized", len(res.Optimized)),
		zap.Int("copied", len(res.Copied)),
		zap.String("output_dir", *outputDir),
	)
}
