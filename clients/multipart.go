package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// File is an in-memory upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Reader returns a fresh reader over the file contents.
func (f File) Reader() io.Reader { return bytes.NewReader(f.Data) }

// MultipartForm is an ordered set of form fields and files.
type MultipartForm struct {
	fields [][2]string
	files  []formFile
}

type formFile struct {
	field string
	file  File
}

func NewMultipartForm() *MultipartForm { return &MultipartForm{} }

// Field appends a text field. Empty values are skipped.
func (m *MultipartForm) Field(name, value string) *MultipartForm {
	if value != "" {
		m.fields = append(m.fields, [2]string{name, value})
	}
	return m
}

// File appends a file part under the given field name.
func (m *MultipartForm) File(field string, f File) *MultipartForm {
	m.files = append(m.files, formFile{field: field, file: f})
	return m
}

// Encode renders the form and returns the body and its Content-Type.
func (m *MultipartForm) Encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range m.files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.file.Name))
		ct := f.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.field, err)
		}
		if _, err := part.Write(f.file.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.field, err)
		}
	}
	for _, kv := range m.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// Blob is an opaque binary response such as a server-generated export.
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

// getBlob fetches a binary endpoint. The response Content-Type is kept;
// fallbackType is used only when the backend sends none. The filename from
// Content-Disposition wins over defaultName.
func (c *APIClient) getBlob(ctx context.Context, path string, query url.Values, fallbackType, defaultName string) (*Blob, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	blob := &Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    defaultName,
		Data:        data,
	}
	if blob.ContentType == "" {
		blob.ContentType = fallbackType
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := strings.TrimSpace(params["filename"]); name != "" {
				blob.Filename = name
			}
		}
	}
	return blob, nil
}
