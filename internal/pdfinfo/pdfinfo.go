// Package pdfinfo inspects generated PDF documents.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

var (
	ErrEmptyPDF   = errors.New("empty PDF data")
	ErrInvalidPDF = errors.New("invalid PDF data")
)

// PageCount returns the number of pages declared by the PDF's page tree.
func PageCount(data []byte) (n int, err error) {
	if len(data) == 0 {
		return 0, ErrEmptyPDF
	}

	// The reader panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return reader.NumPage(), nil
}
