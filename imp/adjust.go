package imp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalize stretches every channel of a U8 Mat so it spans [0, 255].
// Constant channels are left untouched.
func Normalize(m *Mat) (*Mat, error) {
	e, err := FindExtrema(m)
	if err != nil {
		return nil, err
	}

	out := m.Clone()
	for ch := 0; ch < m.Channels; ch++ {
		min, max := e.MinValues[ch], e.MaxValues[ch]
		if min == max {
			continue
		}
		span := float64(max - min)
		for i := ch; i < len(out.bytes); i += m.Channels {
			out.bytes[i] = saturate(float64(m.bytes[i]-min) * 255 / span)
		}
	}
	return out, nil
}

// CBGParams controls the contrast/brightness/gamma transform
// out = contrast * in^gamma + brightness, computed on [0, 1] samples.
type CBGParams struct {
	Contrast   float64
	Brightness float64
	Gamma      float64
	// OnlyLuma restricts the transform to the V plane of RGB images.
	OnlyLuma bool
}

// DefaultCBGParams leaves images unchanged.
var DefaultCBGParams = CBGParams{Contrast: 1, Brightness: 0, Gamma: 1}

// Validate checks that every parameter is within its allowed range.
func (p CBGParams) Validate() error {
	if p.Contrast < 0 || p.Contrast > 2 {
		return fmt.Errorf("%w: contrast %v is out of [0, 2]", ErrInvalidInput, p.Contrast)
	}
	if p.Brightness < -1 || p.Brightness > 1 {
		return fmt.Errorf("%w: brightness %v is out of [-1, 1]", ErrInvalidInput, p.Brightness)
	}
	if p.Gamma < 0 || p.Gamma > 2 {
		return fmt.Errorf("%w: gamma %v is out of [0, 2]", ErrInvalidInput, p.Gamma)
	}
	return nil
}

// CBG applies the contrast/brightness/gamma transform to a U8 Mat.
func CBG(in *Mat, p CBGParams) (*Mat, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := ToFloat(in)
	if err != nil {
		return nil, err
	}

	luma := p.OnlyLuma && in.Channels == 3
	var planes []*Mat
	if luma {
		hsv, err := RGBToHSV(out)
		if err != nil {
			return nil, err
		}
		planes = Split(hsv)
		out = planes[2]
	}

	v := out.floats
	for i := range v {
		v[i] = math.Pow(v[i], p.Gamma)
	}
	floats.Scale(p.Contrast, v)
	floats.AddConst(p.Brightness, v)

	if luma {
		hsv, err := Merge(planes)
		if err != nil {
			return nil, err
		}
		if out, err = HSVToRGB(hsv); err != nil {
			return nil, err
		}
	}
	return ToByte(out)
}
