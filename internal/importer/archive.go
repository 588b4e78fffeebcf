package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"sid/internal/importer/interfaces"
	"sid/internal/providers"
	"sid/internal/structures"
)

// PageArchive persists each fetched page body compressed on disk, one file
// per run and page, so a run can be audited or replayed later.
type PageArchive struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewPageArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.ArchiveInterface {
	if conf.Importer.ArchiveDir == "" {
		logger.Infof(providers.TypeApp, "Page archive disabled")
		return &noopArchive{}
	}
	return &PageArchive{
		dir:        conf.Importer.ArchiveDir,
		compressor: compressor,
		logger:     logger,
	}
}

func (a *PageArchive) StorePage(runId string, page int, body []byte) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}

	data, err := a.compressor.Compress(body)
	if err != nil {
		return err
	}

	fileName := filepath.Join(a.dir, fmt.Sprintf("%s-page-%d.json.zst", runId, page))
	tmpFile := fileName + ".tmp"

	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

type noopArchive struct{}

func (n *noopArchive) StorePage(_ string, _ int, _ []byte) error { return nil }
