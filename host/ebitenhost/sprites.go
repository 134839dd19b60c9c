package ebitenhost

import (
	"image"
	"image/color"
	_ "image/png"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/game"
)

var clearColor = color.RGBA{R: 128, G: 128, B: 0, A: 255}

func decodeImage(_ string, r io.Reader) (any, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "image")
	}
	return ebiten.NewImageFromImage(img), nil
}

// spriteSink draws sprites onto the screen of the current Draw call.
type spriteSink struct {
	catalog *assets.Catalog
	screen  *ebiten.Image
	op      ebiten.DrawImageOptions
}

func (s *spriteSink) Place(image assets.Handle, x, y, _ float32) {
	if s.screen == nil {
		return
	}
	img, ok := assets.Resource[*ebiten.Image](s.catalog, image)
	if !ok {
		return
	}

	bounds := img.Bounds()
	left, top := spriteOrigin(x, y, bounds.Dx(), bounds.Dy())

	s.op.GeoM.Reset()
	s.op.GeoM.Translate(left, top)
	s.screen.DrawImage(img, &s.op)
}

// spriteOrigin returns the screen position of the top-left corner of a
// w by h sprite centred on scene position x, y.
func spriteOrigin(x, y float32, w, h int) (float64, float64) {
	return float64(x) + game.SceneWidth/2 - float64(w)/2,
		float64(y) + game.SceneHeight/2 - float64(h)/2
}
