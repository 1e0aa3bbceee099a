package network

import (
	"context"
	"fmt"
	"os"
)

// ImportSource imports the archive at src, which may be a local zip, a
// directory or an http(s) URL fetched with d.
func (imp *Importer) ImportSource(ctx context.Context, src string, d *Downloader) error {
	path := src
	if IsRemote(src) {
		downloaded, err := d.Download(ctx, src)
		if err != nil {
			return fmt.Errorf("download %s: %w", src, err)
		}
		defer os.Remove(downloaded)
		path = downloaded
	}

	fsys, closer, err := OpenArchive(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	net, err := ParseFS(fsys, imp.logger)
	if err != nil {
		return err
	}
	net.Source = src

	return imp.Import(ctx, net)
}
