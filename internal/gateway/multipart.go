package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// FileUpload carries one file part of a multipart request.
type FileUpload struct {
	Field    string
	Filename string
	Content  io.Reader
}

func multipartBody(fields url.Values, files []FileUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", key, err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// CreateMultipart posts an image/file-bearing create (campaign photos,
// shelter photos, event flyers) as multipart/form-data.
func CreateMultipart[T any](ctx context.Context, c *Client, collection string, fields url.Values, files []FileUpload) (T, error) {
	var out T
	body, contentType, err := multipartBody(fields, files)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPost, c.url(collection), body, contentType, &out)
	return out, err
}

// UpdateMultipart patches a record with multipart/form-data.
func UpdateMultipart[T any](ctx context.Context, c *Client, collection, id string, fields url.Values, files []FileUpload) (T, error) {
	var out T
	body, contentType, err := multipartBody(fields, files)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPatch, c.url(collection, id), body, contentType, &out)
	return out, err
}
