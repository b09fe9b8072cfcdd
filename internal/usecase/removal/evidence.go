package removal

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"sidesweep/internal/application/port/output"
	"sidesweep/internal/domain/entity"
)

const evidenceMaxWidth = 1024

// captureEvidence writes a screenshot for a failed item. Best-effort: any
// problem here is logged and dropped, the item is already counted.
func (e *Engine) captureEvidence(ctx context.Context, job *entity.RemovalJob, item entity.SelectionEntry, log output.LoggerPort) {
	if e.cfg.EvidenceDir == "" {
		return
	}
	raw, err := e.surface.Screenshot(ctx)
	if err != nil {
		log.Debug("evidence screenshot failed", "error", err)
		return
	}
	path := filepath.Join(e.cfg.EvidenceDir, fmt.Sprintf("%s_%s.jpg", job.ID, item.ID))
	if err := writeEvidence(raw, path); err != nil {
		log.Debug("evidence write failed", "path", path, "error", err)
	}
}

// writeEvidence downscales the capture to at most evidenceMaxWidth and
// stores it as JPEG.
func writeEvidence(raw []byte, path string) error {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("image decode failed: %w", err)
	}
	if img.Bounds().Dx() > evidenceMaxWidth {
		img = imaging.Resize(img, evidenceMaxWidth, 0, imaging.Lanczos)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create evidence dir: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return fmt.Errorf("jpeg encode failed: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
