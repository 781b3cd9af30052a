// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// TextureStagingData holds decoded RGBA pixel data pending GPU upload.
// The texture package produces it from image files and consumes it when creating a Texture2D.
type TextureStagingData struct {
	// Path is the file the pixels were decoded from, empty for generated data.
	Path string
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// MimeType is the sniffed content type of the source file (e.g. "image/png").
	MimeType string
}

// Valid reports whether the staging data holds a complete RGBA image.
//
// Returns:
//   - bool: true if the pixel buffer matches width * height * 4
func (t TextureStagingData) Valid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width*t.Height*4)
}

// Checkerboard generates an RGBA checkerboard image. Demos use it as a fallback when a texture fails to load.
//
// Parameters:
//   - size: width and height in pixels
//   - cell: edge length of one checker cell in pixels
//   - a, b: the two RGBA colors
//
// Returns:
//   - TextureStagingData: the generated image
func Checkerboard(size, cell uint32, a, b [4]byte) TextureStagingData {
	if cell == 0 {
		cell = 1
	}
	pix := make([]byte, size*size*4)
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			c := a
			if ((x/cell)+(y/cell))%2 == 1 {
				c = b
			}
			copy(pix[(y*size+x)*4:], c[:])
		}
	}
	return TextureStagingData{Pixels: pix, Width: size, Height: size}
}
