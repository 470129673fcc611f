package port

import "image"

// TextRecognizer abstracts optical character recognition over a batch of
// images. Implementations preprocess each image, skip images whose
// recognition fails, and join the non-empty per-image results with blank
// lines.
type TextRecognizer interface {
	Recognize(images []image.Image) (string, error)
}
