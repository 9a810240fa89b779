package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/nfnt/resize"
)

const avatarSize uint = 128

// MakeAvatar takes raw image data from an upload, scales it down to avatar
// size along its shorter edge, encodes it as a JPEG, and returns it as a
// data URI string suitable for storing in the user's avatar field.
func MakeAvatar(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	var resizedImg image.Image
	if img.Bounds().Dy() > img.Bounds().Dx() {
		resizedImg = resize.Resize(avatarSize, 0, img, resize.Lanczos3)
	} else {
		resizedImg = resize.Resize(0, avatarSize, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	// Encode the resized image as a JPEG. Quality 75 is a good balance.
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: 75}); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}

	base64Str := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", base64Str), nil
}
