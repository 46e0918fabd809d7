package processing

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
)

// supportedExtensions are the input formats the pipeline walks over.
var supportedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
	".heic": {},
	".heif": {},
}

// embeddedExtensionTokens are stripped from the tail of a base name when a
// prior conversion left the old extension embedded in it.
var embeddedExtensionTokens = []string{
	".heic", ".heif", ".tif", ".tiff", ".jpg", ".jpeg", ".png", ".bmp",
}

// Failure records one file the pipeline could not process.
type Failure struct {
	Path string
	Err  error
}

// Report tallies a pipeline run.
type Report struct {
	Processed int
	Failed    int
	Failures  []Failure
}

// Options select the transformation applied to each walked file.
type Options struct {
	// Suffix is appended to the cleaned base name, e.g. "-tiny".
	Suffix string
	// TargetWidth downscales images wider than it. Zero disables resizing.
	TargetWidth int
	// ConvertToJPEG forces a .jpg output regardless of the input format.
	ConvertToJPEG bool
	// Extensions restricts the walk to specific input formats. Empty means
	// every supported format.
	Extensions []string
}

// Processor runs batch transformations into a fixed output directory.
type Processor struct {
	outputDir string
	logger    *slog.Logger
}

// New creates a processor writing into outputDir.
func New(outputDir string, logger *slog.Logger) *Processor {
	return &Processor{
		outputDir: outputDir,
		logger:    logging.NewComponentLogger(logger, "processing"),
	}
}

// OutputDir returns the directory results are written into.
func (p *Processor) OutputDir() string { return p.outputDir }

// TinyThumbnails writes 150px-wide JPEG thumbnails with a -tiny suffix.
func (p *Processor) TinyThumbnails(ctx context.Context, inputDir string) (Report, error) {
	return p.Run(ctx, inputDir, Options{Suffix: "-tiny", TargetWidth: 150, ConvertToJPEG: true})
}

// SmallThumbnails writes 1024px-wide JPEG thumbnails with a -small suffix.
func (p *Processor) SmallThumbnails(ctx context.Context, inputDir string) (Report, error) {
	return p.Run(ctx, inputDir, Options{Suffix: "-small", TargetWidth: 1024, ConvertToJPEG: true})
}

// ConvertTIFF rewrites .tif/.tiff inputs as full-size JPEGs.
func (p *Processor) ConvertTIFF(ctx context.Context, inputDir string) (Report, error) {
	return p.Run(ctx, inputDir, Options{ConvertToJPEG: true, Extensions: []string{".tif", ".tiff"}})
}

// ConvertHEIC rewrites .heic/.heif inputs as full-size JPEGs. Files whose
// codec is unavailable land in the failure tally.
func (p *Processor) ConvertHEIC(ctx context.Context, inputDir string) (Report, error) {
	return p.Run(ctx, inputDir, Options{ConvertToJPEG: true, Extensions: []string{".heic", ".heif"}})
}

// Run walks inputDir recursively and applies the selected transformation to
// every admitted file. Individual failures are tallied; only walk and setup
// errors abort the run.
func (p *Processor) Run(ctx context.Context, inputDir string, opts Options) (Report, error) {
	if strings.TrimSpace(inputDir) == "" {
		return Report{}, fmt.Errorf("input directory is required")
	}
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create output directory: %w", err)
	}

	admitted := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		admitted[strings.ToLower(ext)] = struct{}{}
	}

	var report Report
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if len(admitted) > 0 {
			if _, ok := admitted[ext]; !ok {
				return nil
			}
		} else if _, ok := supportedExtensions[ext]; !ok {
			return nil
		}

		outName, procErr := p.processFile(path, ext, opts)
		if procErr != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Path: path, Err: procErr})
			p.logger.Warn("processing failed",
				logging.String("file", path),
				logging.Error(procErr))
			return nil
		}
		report.Processed++
		p.logger.Debug("processed image",
			logging.String("from", d.Name()),
			logging.String("to", outName))
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("walk %s: %w", inputDir, err)
	}
	return report, nil
}

func (p *Processor) processFile(path, ext string, opts Options) (string, error) {
	outputExt := ext
	if opts.ConvertToJPEG {
		outputExt = ".jpg"
	}
	outName := CleanedBaseName(path) + opts.Suffix + outputExt
	outPath := filepath.Join(p.outputDir, outName)

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	img = applyOrientation(img, readOrientation(path))

	if opts.TargetWidth > 0 {
		if width := img.Bounds().Dx(); width > opts.TargetWidth {
			img = imaging.Resize(img, opts.TargetWidth, 0, imaging.Lanczos)
		}
	}

	if err := imaging.Save(img, outPath); err != nil {
		return "", fmt.Errorf("encode %s: %w", outName, err)
	}
	return outName, nil
}

// CleanedBaseName strips the extension, any -small or -tiny thumbnail
// suffix, and one embedded format token a past conversion may have left in
// the name. "TEMP.123-small.jpg" cleans to "TEMP.123".
func CleanedBaseName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	name = strings.TrimSuffix(name, "-small")
	name = strings.TrimSuffix(name, "-tiny")

	lower := strings.ToLower(name)
	for _, token := range embeddedExtensionTokens {
		if strings.HasSuffix(lower, token) {
			name = name[:len(name)-len(token)]
			break
		}
	}
	return name
}
