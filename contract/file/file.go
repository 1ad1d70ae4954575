// Package file is the file search plugin contract. Media and app metadata
// travel as optional meta_* columns.
package file

import (
	rowskema "github.com/reoring/rowskema"
)

const DefaultMimeType = "application/octet-stream"

var (
	ID           = rowskema.NewColumn("id", rowskema.Text())
	Path         = rowskema.NewColumn("path", rowskema.Text())
	ContentURI   = rowskema.NewColumn("content_uri", rowskema.Text())
	MimeType     = rowskema.NewColumn("mime_type", rowskema.Text())
	Size         = rowskema.NewColumn("size", rowskema.Int64())
	DisplayName  = rowskema.NewColumn("display_name", rowskema.Text())
	ThumbnailURI = rowskema.NewColumn("thumbnail_uri", rowskema.Text())
	IsDirectory  = rowskema.NewColumn("is_directory", rowskema.Bool())
	Owner        = rowskema.NewColumn("owner", rowskema.Text())

	MetaTitle          = rowskema.NewColumn("meta_title", rowskema.Text())
	MetaArtist         = rowskema.NewColumn("meta_artist", rowskema.Text())
	MetaAlbum          = rowskema.NewColumn("meta_album", rowskema.Text())
	MetaDuration       = rowskema.NewColumn("meta_duration", rowskema.Int64())
	MetaYear           = rowskema.NewColumn("meta_year", rowskema.Int32())
	MetaWidth          = rowskema.NewColumn("meta_width", rowskema.Int32())
	MetaHeight         = rowskema.NewColumn("meta_height", rowskema.Int32())
	MetaLocation       = rowskema.NewColumn("meta_location", rowskema.Text())
	MetaAppName        = rowskema.NewColumn("meta_app_name", rowskema.Text())
	MetaAppPackageName = rowskema.NewColumn("meta_app_package_name", rowskema.Text())

	FileColumns = rowskema.NewSchema("file.files",
		ID, Path, ContentURI, MimeType, Size, DisplayName, ThumbnailURI, IsDirectory, Owner,
		MetaTitle, MetaArtist, MetaAlbum, MetaDuration, MetaYear, MetaWidth, MetaHeight,
		MetaLocation, MetaAppName, MetaAppPackageName,
	)
)

// MetaKey names an optional metadata entry.
type MetaKey string

const (
	MetaKeyTitle          MetaKey = "title"
	MetaKeyArtist         MetaKey = "artist"
	MetaKeyAlbum          MetaKey = "album"
	MetaKeyDuration       MetaKey = "duration"
	MetaKeyYear           MetaKey = "year"
	MetaKeyDimensions     MetaKey = "dimensions"
	MetaKeyLocation       MetaKey = "location"
	MetaKeyAppName        MetaKey = "app_name"
	MetaKeyAppPackageName MetaKey = "app_package_name"
	MetaKeyOwner          MetaKey = "owner"
)

// Dimensions is the pixel size of an image or video.
type Dimensions struct {
	Width, Height int32
}

// Metadata holds the optional descriptive fields; nil pointers and empty
// strings are not written.
type Metadata struct {
	Title          string
	Artist         string
	Album          string
	Duration       *int64 // milliseconds
	Year           *int32
	Dimensions     *Dimensions
	Location       string
	AppName        string
	AppPackageName string
	Owner          string
}

// Keys lists the metadata entries that are set, in a stable order.
func (m Metadata) Keys() []MetaKey {
	var out []MetaKey
	add := func(k MetaKey, set bool) {
		if set {
			out = append(out, k)
		}
	}
	add(MetaKeyTitle, m.Title != "")
	add(MetaKeyArtist, m.Artist != "")
	add(MetaKeyAlbum, m.Album != "")
	add(MetaKeyDuration, m.Duration != nil)
	add(MetaKeyYear, m.Year != nil)
	add(MetaKeyDimensions, m.Dimensions != nil)
	add(MetaKeyLocation, m.Location != "")
	add(MetaKeyAppName, m.AppName != "")
	add(MetaKeyAppPackageName, m.AppPackageName != "")
	add(MetaKeyOwner, m.Owner != "")
	return out
}

// File is a file search result.
type File struct {
	ID           string
	Path         string
	ContentURI   string
	MimeType     string
	Size         int64
	DisplayName  string
	ThumbnailURI string
	IsDirectory  bool
	Meta         Metadata
}

func EncodeFiles(files []File) *rowskema.Table {
	return rowskema.BuildRows(FileColumns, files, writeFile)
}

// EncodeFileRecord encodes one file as the payload of a refresh query.
func EncodeFileRecord(f File) rowskema.Record {
	return rowskema.BuildRecord(FileColumns, func(w *rowskema.RowWriter) { writeFile(w, f) })
}

func writeFile(w *rowskema.RowWriter, f File) {
	ID.Set(w, f.ID)
	text(w, Path, f.Path)
	ContentURI.Set(w, f.ContentURI)
	text(w, MimeType, f.MimeType)
	Size.Set(w, f.Size)
	DisplayName.Set(w, f.DisplayName)
	text(w, ThumbnailURI, f.ThumbnailURI)
	IsDirectory.Set(w, f.IsDirectory)

	m := f.Meta
	text(w, Owner, m.Owner)
	text(w, MetaTitle, m.Title)
	text(w, MetaArtist, m.Artist)
	text(w, MetaAlbum, m.Album)
	MetaDuration.SetPtr(w, m.Duration)
	MetaYear.SetPtr(w, m.Year)
	if m.Dimensions != nil {
		MetaWidth.Set(w, m.Dimensions.Width)
		MetaHeight.Set(w, m.Dimensions.Height)
	}
	text(w, MetaLocation, m.Location)
	text(w, MetaAppName, m.AppName)
	text(w, MetaAppPackageName, m.AppPackageName)
}

// DecodeFiles skips rows without id, display name or content uri. Dimensions
// are only kept when both width and height decode.
func DecodeFiles(rs rowskema.RowSet) ([]File, error) {
	var out []File
	err := rowskema.WithColumns(rs, FileColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			id, ok := ID.Get(sc)
			if !ok {
				continue
			}
			name, ok := DisplayName.Get(sc)
			if !ok {
				continue
			}
			uri, ok := ContentURI.Get(sc)
			if !ok {
				continue
			}
			f := File{
				ID:           id,
				Path:         Path.Or(sc, ""),
				ContentURI:   uri,
				MimeType:     MimeType.Or(sc, DefaultMimeType),
				Size:         Size.Or(sc, 0),
				DisplayName:  name,
				ThumbnailURI: ThumbnailURI.Or(sc, ""),
				IsDirectory:  IsDirectory.Or(sc, false),
				Meta: Metadata{
					Title:          MetaTitle.Or(sc, ""),
					Artist:         MetaArtist.Or(sc, ""),
					Album:          MetaAlbum.Or(sc, ""),
					Duration:       MetaDuration.Ptr(sc),
					Year:           MetaYear.Ptr(sc),
					Location:       MetaLocation.Or(sc, ""),
					AppName:        MetaAppName.Or(sc, ""),
					AppPackageName: MetaAppPackageName.Or(sc, ""),
					Owner:          Owner.Or(sc, ""),
				},
			}
			width, wok := MetaWidth.Get(sc)
			height, hok := MetaHeight.Get(sc)
			if wok && hok {
				f.Meta.Dimensions = &Dimensions{Width: width, Height: height}
			}
			out = append(out, f)
		}
		return nil
	})
	return out, err
}

func text(w *rowskema.RowWriter, c *rowskema.Column[string], s string) {
	if s != "" {
		c.Set(w, s)
	}
}
