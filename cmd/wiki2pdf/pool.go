package main

import (
	"context"
	"errors"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
)

// ErrConverterInit is reported for pages that never got a converter.
var ErrConverterInit = errors.New("failed to initialize converter")

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input wiki2pdf.Input) (*wiki2pdf.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*wiki2pdf.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts wiki2pdf.ConverterPool to Pool.
type converterPool struct {
	pool *wiki2pdf.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...wiki2pdf.Option) Pool {
	return &converterPool{pool: wiki2pdf.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, errors.Join(ErrConverterInit, err)
	}
	return conv, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*wiki2pdf.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int    { return p.pool.Size() }
func (p *converterPool) Close() error { return p.pool.Close() }
