// Package acquire turns an opaque input descriptor (URL, raw text, or image
// bytes) into best-effort plain text. It is the outermost adapter of the
// verification pipeline: it returns a typed Failure instead of letting
// transport errors escape into the pipeline driver.
package acquire

import (
	"context"
	"fmt"
	"strings"
)

// InputKind discriminates the supported input descriptors.
type InputKind string

const (
	InputURL   InputKind = "url"
	InputText  InputKind = "text"
	InputImage InputKind = "image"
)

// Input is an opaque descriptor of what the user wants analyzed.
type Input struct {
	Kind  InputKind
	URL   string // when Kind == InputURL
	Text  string // when Kind == InputText
	Image []byte // when Kind == InputImage
}

// Failure is the typed error returned when acquisition cannot produce text.
type Failure struct {
	Kind   InputKind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("acquire %s: %s", f.Kind, f.Reason)
}

// Acquirer converts input descriptors into plain text.
type Acquirer struct {
	fetcher *Fetcher
	ocr     *OCRClient
}

// NewAcquirer creates an acquirer backed by the given page fetcher and OCR client.
func NewAcquirer(fetcher *Fetcher, ocr *OCRClient) *Acquirer {
	return &Acquirer{
		fetcher: fetcher,
		ocr:     ocr,
	}
}

// Acquire returns the plain text behind an input descriptor, or a *Failure.
// Raw text passes through untouched; an empty result is valid and simply
// yields zero claims downstream.
func (a *Acquirer) Acquire(ctx context.Context, in Input) (string, error) {
	switch in.Kind {
	case InputText:
		return in.Text, nil

	case InputURL:
		text, err := a.fetcher.FetchText(ctx, in.URL)
		if err != nil {
			return "", &Failure{Kind: InputURL, Reason: err.Error()}
		}
		return text, nil

	case InputImage:
		if a.ocr == nil {
			return "", &Failure{Kind: InputImage, Reason: "OCR client not configured (set OCR_SPACE_API_KEY)"}
		}
		text, err := a.ocr.ExtractText(ctx, in.Image)
		if err != nil {
			return "", &Failure{Kind: InputImage, Reason: err.Error()}
		}
		return text, nil

	default:
		return "", &Failure{Kind: in.Kind, Reason: "unsupported input kind"}
	}
}

// Subject derives a short human-readable subject line from an input descriptor.
func Subject(in Input) string {
	switch in.Kind {
	case InputURL:
		return subjectFromURL(in.URL)
	case InputImage:
		return "screenshot"
	default:
		text := strings.TrimSpace(in.Text)
		if len(text) > 60 {
			return text[:60] + "…"
		}
		if text == "" {
			return "pasted text"
		}
		return text
	}
}
