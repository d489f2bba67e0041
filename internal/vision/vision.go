// Package vision decodes uploaded image buffers into OpenCV mats and
// checks for the presence of a face before a frame is sent off for
// emotion analysis.
package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrDecode is returned when an uploaded buffer is not a valid image.
var ErrDecode = errors.New("cannot decode image")

// Image wraps a decoded color frame. Callers own the mat and must Close it.
type Image struct {
	Mat gocv.Mat
}

// Decoder turns a raw uploaded byte buffer into a decoded Image.
type Decoder interface {
	Decode(buf []byte) (*Image, error)
}

// GoCVDecoder decodes with OpenCV's imdecode.
type GoCVDecoder struct{}

func (GoCVDecoder) Decode(buf []byte) (*Image, error) {
	if len(buf) == 0 {
		return nil, ErrDecode
	}
	mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrDecode
	}
	return &Image{Mat: mat}, nil
}

// EncodeJPEG re-encodes the frame for submission to the analyzer API.
func (img *Image) EncodeJPEG() ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img.Mat)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

func (img *Image) Close() {
	img.Mat.Close()
}

// Detector runs a Haar cascade over a frame to confirm a face is present.
type Detector struct {
	classifier  gocv.CascadeClassifier
	minFaceSize int
}

// NewDetector loads the cascade file at path. minFaceSize is the smallest
// face edge, in pixels, that counts as a detection.
func NewDetector(path string, minFaceSize int) (*Detector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load face cascade classifier from %s", path)
	}
	if minFaceSize <= 0 {
		minFaceSize = 60
	}
	return &Detector{classifier: classifier, minFaceSize: minFaceSize}, nil
}

// HasFace reports whether at least one face of the configured minimum
// size appears in the frame.
func (d *Detector) HasFace(img *Image) bool {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img.Mat, &gray, gocv.ColorBGRToGray)

	rects := d.classifier.DetectMultiScaleWithParams(
		gray, 1.1, 3, 0,
		image.Pt(d.minFaceSize, d.minFaceSize),
		image.Pt(0, 0),
	)
	return len(rects) > 0
}

func (d *Detector) Close() {
	d.classifier.Close()
}
