package imp

import (
	"fmt"
)

// Mask values.
const (
	MaskOff uint8 = 0
	MaskOn  uint8 = 255
)

// InRange builds a mask that is on wherever the single-channel U8 Mat src
// lies within [lower, upper].
func InRange(src *Mat, lower, upper int) (*Mat, error) {
	if src.depth != U8 || src.Channels != 1 {
		return nil, fmt.Errorf("%w: expected a 1 channel %v mat, got %v", ErrInvalidInput, U8, src)
	}
	dst := NewMat(src.Rows, src.Cols, 1)
	for i, v := range src.bytes {
		if int(v) >= lower && int(v) <= upper {
			dst.bytes[i] = MaskOn
		}
	}
	return dst, nil
}

// Invert flips a mask in place.
func Invert(mask *Mat) {
	for i, v := range mask.bytes {
		mask.bytes[i] = ^v
	}
}

// Combine takes pixels from a where the mask is on, and from b elsewhere.
func Combine(a, b, mask *Mat) (*Mat, error) {
	if !a.SameSize(b) || a.Channels != b.Channels || a.depth != U8 || b.depth != U8 {
		return nil, fmt.Errorf("%w: can't combine %v with %v", ErrInvalidInput, a, b)
	}
	if !mask.SameSize(a) || mask.Channels != 1 || mask.depth != U8 {
		return nil, fmt.Errorf("%w: bad mask %v for %v", ErrInvalidInput, mask, a)
	}

	out := b.Clone()
	k := a.Channels
	for i, on := range mask.bytes {
		if on != MaskOff {
			copy(out.bytes[i*k:(i+1)*k], a.bytes[i*k:(i+1)*k])
		}
	}
	return out, nil
}

// ChromaKeyParams selects the key color as a hue (in 8-bit hue units,
// [0, 180]) and how far from it a hue may be to still be keyed.
type ChromaKeyParams struct {
	Hue         int
	Sensitivity int
}

// DefaultChromaKeyParams keys out green.
var DefaultChromaKeyParams = ChromaKeyParams{Hue: 60, Sensitivity: 20}

// Validate checks that every parameter is within its allowed range.
func (p ChromaKeyParams) Validate() error {
	if p.Hue < 0 || p.Hue > 180 {
		return fmt.Errorf("%w: hue %d is out of [0, 180]", ErrInvalidInput, p.Hue)
	}
	if p.Sensitivity < 0 || p.Sensitivity > 128 {
		return fmt.Errorf("%w: sensitivity %d is out of [0, 128]", ErrInvalidInput, p.Sensitivity)
	}
	return nil
}

// ChromaKeyMask turns on every pixel of an RGB image whose hue is within
// hue±sensitivity. Saturation and value are not constrained, and the hue
// range doesn't wrap around.
func ChromaKeyMask(img *Mat, hue, sensitivity int) (*Mat, error) {
	h, err := Hue(img)
	if err != nil {
		return nil, err
	}
	return InRange(h, hue-sensitivity, hue+sensitivity)
}

// ChromaKey replaces the keyed pixels of fg with those of bg. The
// background is resized to the foreground size if needed. The returned
// mask is on where the foreground was kept.
func ChromaKey(fg, bg *Mat, p ChromaKeyParams) (out, mask *Mat, err error) {
	if err = p.Validate(); err != nil {
		return nil, nil, err
	}
	if fg.Channels != 3 || bg.Channels != 3 {
		return nil, nil, fmt.Errorf("%w: chroma keying needs RGB images, got %v and %v", ErrInvalidInput, fg, bg)
	}
	if !bg.SameSize(fg) {
		if bg, err = Resize(bg, fg.Cols, fg.Rows); err != nil {
			return nil, nil, err
		}
	}

	if mask, err = ChromaKeyMask(fg, p.Hue, p.Sensitivity); err != nil {
		return nil, nil, err
	}
	Invert(mask)

	if out, err = Combine(fg, bg, mask); err != nil {
		return nil, nil, err
	}
	return out, mask, nil
}
