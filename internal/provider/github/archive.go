package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

const DefaultChunkSize = 32 * 1024

type ArchiveDownloader struct {
	client    *http.Client
	branch    string
	chunkSize int
}

func NewArchiveDownloader(client *http.Client, branch string) *ArchiveDownloader {
	if client == nil {
		client = common.NewHTTPClient()
	}
	return &ArchiveDownloader{
		client:    client,
		branch:    branch,
		chunkSize: DefaultChunkSize,
	}
}

// Download streams the default-branch archive of repo into destDir. The data
// goes to a hidden part file first; it is renamed into place only after the
// body reached EOF and the file was closed, and removed on every other path.
func (d *ArchiveDownloader) Download(ctx context.Context, repo domain.Repository, destDir string, progress domain.ProgressFunc) (*domain.Archive, error) {
	archiveURL := common.ArchiveURL(repo.URL, d.branch)
	fileName := common.ArchiveFileName(repo.Name, d.branch)
	finalPath := filepath.Join(destDir, fileName)

	logger.Log("GitHub: Downloading %s to %s", archiveURL, finalPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDownload, &common.FetchError{URL: archiveURL, Err: err})
	}

	resp, err := d.client.Do(req)
	if err != nil {
		logger.LogError("GITHUB_DOWNLOAD", archiveURL, err)
		return nil, fmt.Errorf("%w: %w", common.ErrDownload, &common.FetchError{URL: archiveURL, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &common.FetchError{URL: archiveURL, StatusCode: resp.StatusCode}
		logger.LogError("GITHUB_DOWNLOAD", archiveURL, err)
		return nil, fmt.Errorf("%w: %w", common.ErrDownload, err)
	}

	partPath := filepath.Join(destDir, fmt.Sprintf(".%s.%s.part", fileName, uuid.NewString()))
	logger.LogFileOpen(partPath)
	file, err := os.OpenFile(partPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		logger.LogError("OPEN", partPath, err)
		return nil, fmt.Errorf("%w: %w", common.ErrWrite, err)
	}

	complete := false
	closed := false
	defer func() {
		if complete {
			return
		}
		if !closed {
			file.Close()
		}
		if rmErr := os.Remove(partPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.LogError("CLEANUP", partPath, rmErr)
		}
	}()

	written, contentType, err := d.copyChunks(file, resp.Body, resp.ContentLength, progress)
	if err != nil {
		logger.LogError("GITHUB_DOWNLOAD", archiveURL, err)
		return nil, err
	}

	closed = true
	if err := file.Close(); err != nil {
		logger.LogError("CLOSE", partPath, err)
		return nil, fmt.Errorf("%w: %w", common.ErrWrite, err)
	}

	if err := os.Rename(partPath, finalPath); err != nil {
		logger.LogError("RENAME", finalPath, err)
		return nil, fmt.Errorf("%w: %w", common.ErrWrite, err)
	}
	complete = true

	logger.LogFileWrite(finalPath)
	logger.Log("GitHub: Downloaded %d bytes (%s) to %s", written, contentType, finalPath)

	return &domain.Archive{
		Path:        finalPath,
		Size:        written,
		ContentType: contentType,
	}, nil
}

// sniffLen matches the prefix mimetype inspects by default.
const sniffLen = 3072

// copyChunks moves body to dst one fixed-size chunk at a time. Read failures
// are download errors, write failures are write errors.
func (d *ArchiveDownloader) copyChunks(dst io.Writer, body io.Reader, total int64, progress domain.ProgressFunc) (int64, string, error) {
	buf := make([]byte, d.chunkSize)
	head := make([]byte, 0, sniffLen)
	var written int64
	contentType := ""

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if contentType == "" {
				head = append(head, buf[:min(n, sniffLen-len(head))]...)
				if len(head) == sniffLen {
					contentType = mimetype.Detect(head).String()
				}
			}
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, contentType, fmt.Errorf("%w: %w", common.ErrWrite, err)
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr == io.EOF {
			if contentType == "" && len(head) > 0 {
				contentType = mimetype.Detect(head).String()
			}
			break
		}
		if readErr != nil {
			return written, contentType, fmt.Errorf("%w: reading archive stream: %w", common.ErrDownload, readErr)
		}
	}

	if total > 0 && written != total {
		return written, contentType, fmt.Errorf("%w: received %d of %d bytes", common.ErrDownload, written, total)
	}

	return written, contentType, nil
}
