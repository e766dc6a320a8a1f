// Package submission implements the client-side product submission workflow:
// validate the form input, upload the image to the bucket, then create the
// product record through the API. Strictly sequential — the record call is
// only issued after the upload resolves.
package submission

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxImageBytes caps the accepted image size (5MB).
const MaxImageBytes = 5 * 1024 * 1024

// PackagingTypes is the fixed enumeration accepted for the type field.
var PackagingTypes = []string{"unit", "box", "package", "kilogram", "liter"}

// imageContentTypes maps accepted extensions to their MIME type.
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageFile is the selected image. Open returns a fresh reader over the
// file's bytes; callers close it.
type ImageFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Ext returns the lowercased extension, including the dot.
func (f *ImageFile) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// ContentType resolves the MIME type from the extension, or "" when the
// extension is not an accepted image type.
func (f *ImageFile) ContentType() string {
	return imageContentTypes[f.Ext()]
}

// Input is the raw form data as the user typed it. Price arrives as text and
// is parsed during validation.
type Input struct {
	Name          string
	PackagingType string
	Description   string
	PriceText     string
	Image         *ImageFile
	CategoryID    string
	Barcode       string
}

// Parsed is the validated, typed form of Input.
type Parsed struct {
	Name          string
	PackagingType string
	Description   *string
	Price         decimal.Decimal
	Image         *ImageFile
	CategoryID    string
	Barcode       string
}

// Result is a tagged union: either Valid is set, or Errors holds one message
// per offending field.
type Result struct {
	Valid  *Parsed
	Errors map[string]string
}

func (r Result) OK() bool { return r.Valid != nil }

// Validate runs every field rule synchronously and returns either the parsed
// input or the full set of field errors. It is pure — no network calls, no
// side effects.
func Validate(in Input) Result {
	errs := make(map[string]string)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs["name"] = "name is required"
	}

	if in.PackagingType == "" {
		errs["type"] = "select a packaging type"
	} else if !validPackaging(in.PackagingType) {
		errs["type"] = "invalid packaging type"
	}

	var price decimal.Decimal
	if strings.TrimSpace(in.PriceText) == "" {
		errs["price"] = "price is required"
	} else {
		p, err := decimal.NewFromString(strings.TrimSpace(in.PriceText))
		if err != nil {
			errs["price"] = "price must be a number"
		} else if p.IsNegative() {
			errs["price"] = "price cannot be negative"
		} else {
			price = p
		}
	}

	switch {
	case in.Image == nil:
		errs["image"] = "an image is required"
	case in.Image.Size > MaxImageBytes:
		errs["image"] = "image exceeds 5MB"
	case in.Image.ContentType() == "":
		errs["image"] = "image must be JPG, PNG or WEBP"
	}

	if strings.TrimSpace(in.CategoryID) == "" {
		errs["categoryId"] = "select a category"
	}

	barcode := strings.TrimSpace(in.Barcode)
	if barcode == "" {
		errs["barcode"] = "barcode is required"
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	var desc *string
	if d := strings.TrimSpace(in.Description); d != "" {
		desc = &d
	}

	return Result{Valid: &Parsed{
		Name:          name,
		PackagingType: in.PackagingType,
		Description:   desc,
		Price:         price,
		Image:         in.Image,
		CategoryID:    strings.TrimSpace(in.CategoryID),
		Barcode:       barcode,
	}}
}

func validPackaging(t string) bool {
	for _, p := range PackagingTypes {
		if p == t {
			return true
		}
	}
	return false
}
