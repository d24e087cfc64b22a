package captcha

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mojocn/base64Captcha"
)

// alphabet excludes glyphs that render ambiguously at small sizes.
const alphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// GenerateText returns a random challenge string of the given length drawn
// from the unambiguous alphabet.
func GenerateText(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("captcha length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("captcha text generation: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}

// Renderer draws challenge text into a PNG image.
type Renderer struct {
	driver *base64Captcha.DriverString
}

// NewRenderer creates a renderer sized for typical login forms.
func NewRenderer() *Renderer {
	return &Renderer{
		driver: base64Captcha.NewDriverString(
			48,  // height
			130, // width
			2,   // noise count
			base64Captcha.OptionShowHollowLine,
			0, // length is driven by the text we pass in
			alphabet,
			nil,
			nil,
			nil,
		),
	}
}

// Render draws the given text and returns the encoded image bytes.
func (r *Renderer) Render(text string) ([]byte, error) {
	item, err := r.driver.DrawCaptcha(text)
	if err != nil {
		return nil, fmt.Errorf("captcha render: %w", err)
	}

	var buf bytes.Buffer
	if _, err := item.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("captcha encode: %w", err)
	}
	return buf.Bytes(), nil
}
