package services

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/utils"
)

// ThumbnailService renders the card image shown in the game library. Games
// have no uploaded artwork, so the thumbnail is generated: a template-colored
// background with the title initial.
type ThumbnailService interface {
	CreateGameThumbnail(gameID uuid.UUID, title, template string) (string, error)
	DeleteGameThumbnail(url string)
	MediaDir() string
}

type thumbnailService struct {
	log      *logger.Logger
	mediaDir string
	baseURL  string
	fontFace font.Face
}

var templateColors = map[string]color.NRGBA{
	"matching": {R: 0x7C, G: 0x4D, B: 0xFF, A: 0xFF},
	"sorting":  {R: 0x00, G: 0xB8, B: 0x94, A: 0xFF},
	"catch":    {R: 0xFF, G: 0x8F, B: 0x3C, A: 0xFF},
	"story":    {R: 0x3C, G: 0x91, B: 0xFF, A: 0xFF},
}

var fallbackColor = color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF}

func NewThumbnailService(log *logger.Logger) (ThumbnailService, error) {
	serviceLog := log.With("service", "ThumbnailService")

	mediaDir := utils.GetEnv("MEDIA_DIR", "./media", log)
	if err := os.MkdirAll(filepath.Join(mediaDir, "thumbnails"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	baseURL := strings.TrimSuffix(utils.GetEnv("MEDIA_BASE_URL", "/media", log), "/")

	fontPath := utils.GetEnv("THUMBNAIL_FONT", "", log)
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("THUMBNAIL_FONT is not set")
	}
	face, err := loadFontFace(fontPath, 180)
	if err != nil {
		return nil, fmt.Errorf("load thumbnail font: %w", err)
	}

	return &thumbnailService{
		log:      serviceLog,
		mediaDir: mediaDir,
		baseURL:  baseURL,
		fontFace: face,
	}, nil
}

func (ts *thumbnailService) CreateGameThumbnail(gameID uuid.UUID, title, template string) (string, error) {
	const width, height = 512, 384

	dc := gg.NewContext(width, height)

	bg, ok := templateColors[template]
	if !ok {
		bg = fallbackColor
	}
	dc.SetColor(bg)
	dc.DrawRoundedRectangle(0, 0, width, height, 24)
	dc.Fill()

	// Soft accent circle behind the initial.
	dc.SetRGBA(1, 1, 1, 0.18)
	dc.DrawCircle(width/2, height/2, 130)
	dc.Fill()

	initial := titleInitial(title)
	dc.SetFontFace(ts.fontFace)
	tw, th := dc.MeasureString(initial)
	dc.SetColor(color.White)
	dc.DrawString(initial, width/2-tw/2, height/2+th/2-12)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	// Versioned file name so a regenerated thumbnail is never served stale.
	name := fmt.Sprintf("%s-%d.png", gameID, time.Now().UnixNano())
	path := filepath.Join(ts.mediaDir, "thumbnails", name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}

	return ts.baseURL + "/thumbnails/" + name, nil
}

// DeleteGameThumbnail removes a generated file; a failure is logged and
// otherwise ignored since a stale file on disk is harmless.
func (ts *thumbnailService) DeleteGameThumbnail(url string) {
	if url == "" {
		return
	}
	name := filepath.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return
	}
	path := filepath.Join(ts.mediaDir, "thumbnails", name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		ts.log.Warn("failed to delete thumbnail", "path", path, "error", err)
	}
}

func (ts *thumbnailService) MediaDir() string { return ts.mediaDir }

func titleInitial(title string) string {
	title = strings.TrimSpace(title)
	for _, r := range title {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
