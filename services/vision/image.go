// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package vision re-encodes host image tensors as JPEG data URIs and
// relays them with an instruction to a vision-capable chat model.
package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // register PNG decoding for file-based inputs
	"math"
)

// jpegQuality matches typical host screenshot/export quality.
const jpegQuality = 90

// Tensor is a decoded image as height × width × channel float values
// in the 0..1 range.
type Tensor [][][]float64

// DecodeTensor interprets a host JSON payload as an image tensor.
//
// Accepted forms, mirroring what graph hosts are known to emit:
//   - a batch (4D nested array): the first image is used
//   - a single image (3D nested array) in HWC or CHW layout
//
// Layout detection follows the channel axis: a leading dimension of
// 1, 3 or 4 is read as CHW; otherwise a trailing dimension of 1, 3
// or 4 is read as HWC. Anything else is ErrBadImageShape.
func DecodeTensor(v any) (Tensor, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, ErrBadImageShape
	}

	// Batch: elements are themselves 3D. Use the first image.
	if depth(arr) == 4 {
		first, ok := arr[0].([]any)
		if !ok || len(first) == 0 {
			return nil, ErrBadImageShape
		}
		arr = first
	}

	if depth(arr) != 3 {
		return nil, ErrBadImageShape
	}

	cube, err := toCube(arr)
	if err != nil {
		return nil, err
	}

	d0 := len(cube)
	d2 := len(cube[0][0])

	switch {
	case channelCount(d0) && !channelCount(d2):
		return chwToHWC(cube), nil
	case channelCount(d2):
		return Tensor(cube), nil
	default:
		return nil, fmt.Errorf("%w: got %dx%dx%d", ErrBadImageShape, d0, len(cube[0]), d2)
	}
}

func channelCount(n int) bool { return n == 1 || n == 3 || n == 4 }

// depth reports the nesting depth of a []any tree along its first
// elements.
func depth(arr []any) int {
	d := 1
	for {
		if len(arr) == 0 {
			return d
		}
		inner, ok := arr[0].([]any)
		if !ok {
			return d
		}
		arr = inner
		d++
	}
}

// toCube converts nested []any to a rectangular float cube.
func toCube(arr []any) ([][][]float64, error) {
	cube := make([][][]float64, len(arr))
	var rows, cols = -1, -1
	for i, rv := range arr {
		rowArr, ok := rv.([]any)
		if !ok {
			return nil, ErrBadImageShape
		}
		if rows == -1 {
			rows = len(rowArr)
		} else if len(rowArr) != rows {
			return nil, ErrBadImageShape
		}
		cube[i] = make([][]float64, len(rowArr))
		for j, cv := range rowArr {
			colArr, ok := cv.([]any)
			if !ok {
				return nil, ErrBadImageShape
			}
			if cols == -1 {
				cols = len(colArr)
			} else if len(colArr) != cols {
				return nil, ErrBadImageShape
			}
			row := make([]float64, len(colArr))
			for k, nv := range colArr {
				n, ok := asNumber(nv)
				if !ok {
					return nil, ErrBadImageShape
				}
				row[k] = n
			}
			cube[i][j] = row
		}
	}
	if len(cube) == 0 || rows == 0 || cols == 0 {
		return nil, ErrBadImageShape
	}
	return cube, nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func chwToHWC(chw [][][]float64) Tensor {
	channels := len(chw)
	height := len(chw[0])
	width := len(chw[0][0])

	out := make(Tensor, height)
	for y := 0; y < height; y++ {
		out[y] = make([][]float64, width)
		for x := 0; x < width; x++ {
			px := make([]float64, channels)
			for c := 0; c < channels; c++ {
				px[c] = chw[c][y][x]
			}
			out[y][x] = px
		}
	}
	return out
}

// ToRGBA converts the tensor to an image, clipping values to 0..1 and
// scaling to 8-bit. Grayscale is replicated across RGB; alpha is
// dropped.
func (t Tensor) ToRGBA() *image.RGBA {
	height := len(t)
	width := len(t[0])
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := t[y][x]
			var r, g, b float64
			switch len(px) {
			case 1:
				r, g, b = px[0], px[0], px[0]
			default:
				r, g, b = px[0], px[1], px[2]
			}
			img.SetRGBA(x, y, color.RGBA{
				R: clip8(r),
				G: clip8(g),
				B: clip8(b),
				A: 255,
			})
		}
	}
	return img
}

func clip8(v float64) uint8 {
	v = math.Min(math.Max(v, 0), 1)
	return uint8(math.Round(v * 255))
}

// DataURI encodes the tensor as a base64 JPEG data URI.
func (t Tensor) DataURI() (string, error) {
	if len(t) == 0 || len(t[0]) == 0 {
		return "", ErrBadImageShape
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, t.ToRGBA(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DataURIFromBytes decodes raw PNG or JPEG bytes and re-encodes them
// as a JPEG data URI. Used by the CLI for file inputs.
func DataURIFromBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
