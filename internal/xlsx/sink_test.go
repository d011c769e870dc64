package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/encoder"
	"github.com/AnyUserName/swatchcard/internal/fixture"
	"github.com/AnyUserName/swatchcard/internal/normalize"
	"github.com/AnyUserName/swatchcard/internal/pipeline"
	"github.com/AnyUserName/swatchcard/internal/placement"
	"github.com/AnyUserName/swatchcard/internal/profile"
	"github.com/AnyUserName/swatchcard/internal/report"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

const sheet = "Swatch Card"

func normalized(t *testing.T, raw []byte) pipeline.Outcome {
	t.Helper()
	img, err := normalize.New(encoder.NewRegistry(), 85).Normalize(raw, 150, 150)
	require.NoError(t, err)
	pl, err := placement.Fit(img.Width, img.Height, 150, 150)
	require.NoError(t, err)
	return pipeline.Outcome{Image: img, Placement: pl}
}

func render(t *testing.T, swatches []swatch.Swatch, outcomes []pipeline.Outcome) (*excelize.File, report.RenderStats) {
	t.Helper()
	sink, err := New(sheet)
	require.NoError(t, err)
	defer sink.Close()

	stats, err := report.Render(sink, report.Assemble(swatches, outcomes), report.Layout{
		Profile: profile.Get("standard"),
		Styles:  report.DefaultStyles(),
		Props:   report.DocProps{Title: "Swatch Card - PO-7", Author: "Swatch Card Builder", Company: "HalfPrice"},
		Footer:  report.NewFooter(""),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := sink.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f, stats
}

func TestRender_Workbook(t *testing.T) {
	swatches := []swatch.Swatch{
		{StyleNumber: "AB12", Brand: "Acme", Fabrication: "100% cotton twill", PORef: "PO-7"},
		{StyleNumber: "CD34", Brand: "Acme"},
		{StyleNumber: "EF56", ColorName: "Navy"},
	}
	outcomes := []pipeline.Outcome{
		normalized(t, fixture.JPEG(800, 600)),
		{Err: apperr.ErrImageUnavailable},
		normalized(t, fixture.PNG(fixture.AlphaGradient(60, 40))),
	}

	f, stats := render(t, swatches, outcomes)
	assert.Equal(t, report.RenderStats{Rows: 3, Embedded: 2}, stats)

	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 6)
	assert.Equal(t, report.Headers, rows[0])
	assert.Equal(t, "AB12", rows[1][report.ColStyle])
	assert.Equal(t, "100% cotton twill", rows[1][report.ColFabrication])
	assert.Equal(t, "PO-7", rows[1][report.ColPORef])
	assert.Equal(t, report.NoImageText, rows[2][report.ColImage])
	assert.Equal(t, "Navy", rows[3][report.ColColorName])
	assert.Equal(t, report.DefaultFooter, rows[5][report.ColStyle])

	pics, err := f.GetPictures(sheet, "A2")
	require.NoError(t, err)
	require.Len(t, pics, 1)
	assert.Contains(t, []string{".jpg", ".jpeg"}, pics[0].Extension)

	pics, err = f.GetPictures(sheet, "A3")
	require.NoError(t, err)
	assert.Empty(t, pics)

	pics, err = f.GetPictures(sheet, "A4")
	require.NoError(t, err)
	require.Len(t, pics, 1)
	assert.Equal(t, ".png", pics[0].Extension)

	h, err := f.GetRowHeight(sheet, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, h)
	h, err = f.GetRowHeight(sheet, 2)
	require.NoError(t, err)
	assert.Equal(t, 112.5, h)

	w, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 22.0, w)
	w, err = f.GetColWidth(sheet, "F")
	require.NoError(t, err)
	assert.Equal(t, 32.0, w)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Swatch Card - PO-7", props.Title)
	assert.Equal(t, "Swatch Card Builder", props.Creator)
}

func TestEmbedImage_RejectsCorruptBuffer(t *testing.T) {
	sink, err := New(sheet)
	require.NoError(t, err)
	defer sink.Close()

	err = sink.EmbedImage(1, 0, []byte("not an image"), "jpg", placement.Placement{ScaleX: 1, ScaleY: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrEmbedFailure)

	err = sink.EmbedImage(1, 0, fixture.JPEG(10, 10), "avif", placement.Placement{ScaleX: 1, ScaleY: 1})
	assert.ErrorIs(t, err, apperr.ErrEmbedFailure)
}

func TestExtension(t *testing.T) {
	for in, want := range map[string]string{"jpg": ".jpg", "jpeg": ".jpeg", ".PNG": ".png", "gif": ".gif"} {
		got, err := extension(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := extension("")
	assert.ErrorIs(t, err, apperr.ErrEmbedFailure)
}

func TestSetText_UndefinedStyle(t *testing.T) {
	sink, err := New(sheet)
	require.NoError(t, err)
	defer sink.Close()

	assert.Error(t, sink.SetText(0, 0, "x", "missing"))
	assert.NoError(t, sink.SetText(0, 0, "x", ""))
}

func TestNew_InvalidSheetName(t *testing.T) {
	_, err := New("a/b")
	assert.Error(t, err)
}
