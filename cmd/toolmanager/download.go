package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

type DownloadCmd struct {
	Name string `arg:"" help:"Repository name, as shown by list."`
}

func (c *DownloadCmd) Run(rc *runContext) error {
	id, err := common.ParseRepositoryID(c.Name)
	if err != nil {
		return err
	}

	if err := rc.catalog.Load(rc.ctx); err != nil {
		return fmt.Errorf("%s: %w", common.UserMessage(err), err)
	}

	rc.selection.Select(id)
	current, _ := rc.selection.Current()
	repo, err := rc.catalog.Get(current)
	if err != nil {
		return fmt.Errorf("%s: %w", common.UserMessage(err), err)
	}

	var bar *progressbar.ProgressBar
	archive, err := rc.provider.Download(rc.ctx, repo, rc.cfg.Destination, func(written, total int64) {
		if bar == nil {
			bar = newByteBar(total, repo.Name)
		}
		_ = bar.Set64(written)
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("%s: %w", common.UserMessage(err), err)
	}

	fmt.Printf("[Download completed!] %s (%s)\n", archive.Path, humanize.Bytes(uint64(archive.Size)))
	return nil
}

// newByteBar renders a byte bar, or a spinner when the server sent no length.
func newByteBar(total int64, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{Saucer: "#", SaucerPadding: " ", BarStart: "|", BarEnd: "|"}),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
