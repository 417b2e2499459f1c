package components

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	PlotAreaWidth  = 640
	PlotAreaHeight = 560
)

// PlotDisplay shows the rasterised figure.
type PlotDisplay struct {
	container *fyne.Container
	image     *canvas.Image
}

// NewPlotDisplay creates a display showing a blank placeholder.
func NewPlotDisplay() *PlotDisplay {
	pd := &PlotDisplay{}
	pd.image = canvas.NewImageFromImage(placeholder())
	pd.image.FillMode = canvas.ImageFillContain
	pd.image.ScaleMode = canvas.ImageScaleSmooth
	pd.image.SetMinSize(fyne.NewSize(PlotAreaWidth/2, PlotAreaHeight/2))

	background := canvas.NewRectangle(color.White)
	pd.container = container.NewStack(background, pd.image)
	return pd
}

func placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, PlotAreaWidth, PlotAreaHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// SetImage replaces the displayed figure.
func (pd *PlotDisplay) SetImage(img image.Image) {
	if img == nil {
		img = placeholder()
	}
	pd.image.Image = img
	pd.image.Refresh()
}

// Image returns the image currently shown.
func (pd *PlotDisplay) Image() image.Image {
	return pd.image.Image
}

// PixelSize returns the display area in device pixels, falling back to
// the default plot area before the first layout.
func (pd *PlotDisplay) PixelSize() (int, int) {
	size := pd.container.Size()
	scale := float32(1)
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(pd.container); c != nil {
			scale = c.Scale()
		}
	}
	w, h := int(size.Width*scale), int(size.Height*scale)
	if w <= 0 || h <= 0 {
		return PlotAreaWidth, PlotAreaHeight
	}
	return w, h
}

// GetContainer returns the display container
func (pd *PlotDisplay) GetContainer() *fyne.Container {
	return pd.container
}
