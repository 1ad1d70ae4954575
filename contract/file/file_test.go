package file_test

import (
	"slices"
	"testing"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/file"
)

func TestFiles_RoundTrip(t *testing.T) {
	dur := int64(215000)
	year := int32(1999)
	in := []file.File{{
		ID: "f1", Path: "/music/song.mp3", ContentURI: "content://f1", MimeType: "audio/mpeg", Size: 4096,
		DisplayName: "song.mp3",
		Meta: file.Metadata{
			Title: "Song", Artist: "Band", Duration: &dur, Year: &year,
			Dimensions: &file.Dimensions{Width: 640, Height: 480},
		},
	}}
	out, err := file.DecodeFiles(file.EncodeFiles(in))
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	f := out[0]
	if f.Size != 4096 || f.MimeType != "audio/mpeg" || f.IsDirectory {
		t.Fatalf("base fields mismatch %+v", f)
	}
	m := f.Meta
	if m.Title != "Song" || *m.Duration != dur || *m.Year != year || *m.Dimensions != (file.Dimensions{Width: 640, Height: 480}) {
		t.Fatalf("metadata mismatch %+v", m)
	}
	want := []file.MetaKey{file.MetaKeyTitle, file.MetaKeyArtist, file.MetaKeyDuration, file.MetaKeyYear, file.MetaKeyDimensions}
	if !slices.Equal(m.Keys(), want) {
		t.Fatalf("keys: want %v, got %v", want, m.Keys())
	}
}

func TestFiles_Defaults(t *testing.T) {
	table := &rowskema.Table{
		Cols: []string{"id", "display_name", "content_uri", "meta_width"},
		Rows: [][]rowskema.Value{{
			rowskema.TextValue("f"), rowskema.TextValue("a.bin"), rowskema.TextValue("c"), rowskema.Int32Value(10),
		}},
	}
	out, _ := file.DecodeFiles(table)
	if len(out) != 1 {
		t.Fatalf("want 1 file, got %d", len(out))
	}
	if out[0].MimeType != file.DefaultMimeType || out[0].Meta.Dimensions != nil {
		t.Fatalf("unexpected defaults %+v", out[0])
	}
}

func TestFileRecord_RoundTrip(t *testing.T) {
	year := int32(2001)
	in := file.File{
		ID: "f9", ContentURI: "content://f9", DisplayName: "photo.jpg", MimeType: "image/jpeg",
		Meta: file.Metadata{Year: &year, Dimensions: &file.Dimensions{Width: 10, Height: 20}},
	}
	rec := file.EncodeFileRecord(in)
	if _, ok := rec["meta_title"]; ok {
		t.Fatalf("unset metadata must be left out of the record: %v", rec)
	}
	out, err := file.DecodeFiles(rec)
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	f := out[0]
	if f.ID != "f9" || f.MimeType != "image/jpeg" || *f.Meta.Year != year || *f.Meta.Dimensions != *in.Meta.Dimensions {
		t.Fatalf("record mismatch %+v", f)
	}
}
