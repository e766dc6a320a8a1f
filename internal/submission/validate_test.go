package submission

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memImage(name string, size int64) *ImageFile {
	payload := bytes.Repeat([]byte{0xAB}, int(min64(size, 64)))
	return &ImageFile{
		Name: name,
		Size: size,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		},
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func validInput() Input {
	return Input{
		Name:          "Feijão Carioca 1kg",
		PackagingType: "kilogram",
		PriceText:     "12.90",
		Image:         memImage("feijao.jpg", 1024),
		CategoryID:    "0b9fbd9e-4f6a-4f41-9f65-6dd397c0f6f1",
		Barcode:       "7891234567890",
	}
}

func TestValidateAcceptsCompleteInput(t *testing.T) {
	res := Validate(validInput())
	require.True(t, res.OK())
	assert.Empty(t, res.Errors)

	assert.Equal(t, "Feijão Carioca 1kg", res.Valid.Name)
	assert.Equal(t, "kilogram", res.Valid.PackagingType)
	assert.True(t, res.Valid.Price.Equal(mustDecimal(t, "12.9")))
	assert.Nil(t, res.Valid.Description)
}

func TestValidateRejectsEachMissingField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"empty name", func(in *Input) { in.Name = "   " }, "name"},
		{"unselected packaging", func(in *Input) { in.PackagingType = "" }, "type"},
		{"unknown packaging", func(in *Input) { in.PackagingType = "dozen" }, "type"},
		{"non-numeric price", func(in *Input) { in.PriceText = "abc" }, "price"},
		{"empty price", func(in *Input) { in.PriceText = "" }, "price"},
		{"negative price", func(in *Input) { in.PriceText = "-3.50" }, "price"},
		{"missing image", func(in *Input) { in.Image = nil }, "image"},
		{"oversized image", func(in *Input) { in.Image = memImage("big.png", MaxImageBytes+1) }, "image"},
		{"wrong image type", func(in *Input) { in.Image = memImage("file.gif", 100) }, "image"},
		{"missing category", func(in *Input) { in.CategoryID = "" }, "categoryId"},
		{"empty barcode", func(in *Input) { in.Barcode = "" }, "barcode"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			res := Validate(in)
			require.False(t, res.OK())
			assert.Contains(t, res.Errors, tc.field)
		})
	}
}

func TestValidateAcceptsZeroPrice(t *testing.T) {
	in := validInput()
	in.PriceText = "0.00"

	res := Validate(in)
	require.True(t, res.OK(), "zero is a valid price; only negatives are rejected")
	assert.True(t, res.Valid.Price.IsZero())
}

func TestValidateCollectsAllErrorsAtOnce(t *testing.T) {
	res := Validate(Input{})
	require.False(t, res.OK())
	for _, field := range []string{"name", "type", "price", "image", "categoryId", "barcode"} {
		assert.Contains(t, res.Errors, field)
	}
}

func TestValidateTrimsAndNormalizes(t *testing.T) {
	in := validInput()
	in.Name = "  Arroz Branco 5kg  "
	in.Barcode = " 7890000000001 "
	in.Description = "  tipo 1  "

	res := Validate(in)
	require.True(t, res.OK())
	assert.Equal(t, "Arroz Branco 5kg", res.Valid.Name)
	assert.Equal(t, "7890000000001", res.Valid.Barcode)
	require.NotNil(t, res.Valid.Description)
	assert.Equal(t, "tipo 1", *res.Valid.Description)
}

func TestImageFileContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", memImage("a.JPG", 10).ContentType())
	assert.Equal(t, "image/png", memImage("a.png", 10).ContentType())
	assert.Equal(t, "image/webp", memImage("a.webp", 10).ContentType())
	assert.Equal(t, "", memImage("a.gif", 10).ContentType())
}
