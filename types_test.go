package wiki2pdf

import (
	"errors"
	"testing"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil is valid", page: nil},
		{name: "defaults", page: DefaultPageSettings()},
		{name: "case insensitive", page: &PageSettings{Size: "A4", Orientation: "Landscape", Margin: 1}},
		{name: "unknown size", page: &PageSettings{Size: "tabloid", Orientation: OrientationPortrait, Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "unknown orientation", page: &PageSettings{Size: PageSizeA4, Orientation: "diagonal", Margin: 1}, wantErr: ErrInvalidOrientation},
		{name: "margin too small", page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 4}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		layout  *Layout
		wantErr bool
	}{
		{name: "nil is valid", layout: nil},
		{name: "defaults", layout: DefaultLayout()},
		{name: "zero disables both", layout: &Layout{}},
		{name: "max level", layout: &Layout{PageBreakMaxLevel: MaxLayoutLevel, PageTOCMaxLevel: MaxLayoutLevel}},
		{name: "negative break level", layout: &Layout{PageBreakMaxLevel: -1}, wantErr: true},
		{name: "toc level too deep", layout: &Layout{PageTOCMaxLevel: MaxLayoutLevel + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.layout.Validate()
			if tt.wantErr != errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFooter_Validate(t *testing.T) {
	t.Parallel()

	for _, pos := range []string{"", "left", "Center", "RIGHT"} {
		if err := (&Footer{Position: pos}).Validate(); err != nil {
			t.Errorf("Validate(%q) error = %v", pos, err)
		}
	}
	if err := (&Footer{Position: "top"}).Validate(); !errors.Is(err, ErrInvalidFooterPosition) {
		t.Errorf("Validate(top) error = %v, want ErrInvalidFooterPosition", err)
	}
	var nilFooter *Footer
	if err := nilFooter.Validate(); err != nil {
		t.Errorf("nil Validate() error = %v", err)
	}
}
