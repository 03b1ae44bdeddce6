package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// UploadFile is one pending local file for the create workflow.
type UploadFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// ProgressFunc reports per-file upload progress as a fraction in [0, 1].
// It is called from the uploading goroutines.
type ProgressFunc func(fileIndex int, fraction float64)

// CreatePostWithPhotos runs the two-phase create workflow: commit the
// post record, request one signed URL per file in a single batch, then
// PUT all files concurrently while reporting progress. Once every
// upload has settled the view is refreshed. A failed upload is logged
// and leaves an orphaned photo record behind; the created post is not
// rolled back.
func (v *View) CreatePostWithPhotos(ctx context.Context, post Post, files []UploadFile, progress ProgressFunc) error {
	if err := v.api.CreatePost(ctx, post); err != nil {
		return err
	}
	if len(files) > 0 {
		uploads := make([]PhotoUpload, len(files))
		for i, f := range files {
			uploads[i] = PhotoUpload{ContentType: f.ContentType}
		}
		urls, err := v.api.RequestUploadURLs(ctx, post.ID, uploads)
		if err != nil {
			return err
		}
		if len(urls) != len(files) {
			return fmt.Errorf("client: got %d upload urls for %d files", len(urls), len(files))
		}

		var wg sync.WaitGroup
		for i := range files {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				if err := uploadFile(ctx, urls[idx], files[idx], idx, progress); err != nil {
					v.log.Warn("upload of %s failed: %v", files[idx].Name, err)
				}
			}(i)
		}
		wg.Wait()
	}
	return v.Refresh(ctx, true)
}

func uploadFile(ctx context.Context, url string, file UploadFile, idx int, progress ProgressFunc) error {
	var body io.Reader = bytes.NewReader(file.Content)
	if progress != nil {
		body = &progressReader{r: body, total: int64(len(file.Content)), idx: idx, fn: progress}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(file.Content))
	req.Header.Set("Content-Type", file.ContentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage answered %d", resp.StatusCode)
	}
	if progress != nil {
		progress(idx, 1)
	}
	return nil
}

// progressReader reports cumulative read progress as the request body
// is consumed.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	idx   int
	fn    ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.total > 0 {
		p.sent += int64(n)
		p.fn(p.idx, float64(p.sent)/float64(p.total))
	}
	return n, err
}
