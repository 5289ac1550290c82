package httpclient

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody is a multipart/form-data Body. Fields are written before
// Files, each in slice order.
type MultipartBody struct {
	Fields []FormField
	Files  []FileField
}

type FormField struct {
	Name  string
	Value string
}

// FileField is one uploaded file. ContentType defaults to
// application/octet-stream.
type FileField struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// Add appends a text field.
func (m *MultipartBody) Add(name, value string) *MultipartBody {
	m.Fields = append(m.Fields, FormField{Name: name, Value: value})
	return m
}

// Field looks up the first field called name.
func (m *MultipartBody) Field(name string) (string, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Encode renders the body with a fresh boundary, so a retried request gets
// an identical payload.
func (m *MultipartBody) Encode() (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for _, f := range m.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	for _, f := range m.Files {
		if err := f.writeTo(w); err != nil {
			return nil, "", fmt.Errorf("file %s: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (f FileField) writeTo(w *multipart.Writer) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.FileName)))
	h.Set("Content-Type", cmp.Or(f.ContentType, "application/octet-stream"))
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
