package cli

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/larkspur/atlaspacker/internal/imagesrc"
)

// cacheFileName is written inside the output directory when
// --skip-unchanged is set.
const cacheFileName = ".atlaspacker-cache"

// computeInputsHash fingerprints the decoded pixel dimensions and name of
// every loaded image, sorted by name for determinism. This is a fast,
// unkeyed convenience check layered on top of the manifest's authoritative
// SHA-256 content hashes; it is not a substitute for them.
func computeInputsHash(images []imagesrc.SourceImage) uint64 {
	type entry struct {
		name string
		w, h int
	}
	entries := make([]entry, len(images))
	for i, im := range images {
		entries[i] = entry{name: im.Name, w: im.Width, h: im.Height}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	h := xxhash.New()
	for _, e := range entries {
		_, _ = h.WriteString(e.name)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(strconv.Itoa(e.w))
		_, _ = h.Write([]byte{'x'})
		_, _ = h.WriteString(strconv.Itoa(e.h))
		_, _ = h.Write([]byte{'\n'})
	}

	return h.Sum64()
}

func shouldSkipPack(opts *CmdPack, images []imagesrc.SourceImage) (bool, error) {
	manifestPath := filepath.Join(opts.Output, "manifest.json")
	if _, err := os.Stat(manifestPath); err != nil {
		return false, nil
	}

	prev, ok, err := readCacheHash(opts.Output)
	if err != nil || !ok {
		return false, err
	}

	return prev == computeInputsHash(images), nil
}

func writeSkipCache(opts *CmdPack, images []imagesrc.SourceImage) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, computeInputsHash(images))
	if err := os.WriteFile(filepath.Join(opts.Output, cacheFileName), buf, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

func readCacheHash(outputDir string) (uint64, bool, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, cacheFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read cache: %w", err)
	}
	if len(data) != 8 {
		return 0, false, nil
	}
	return binary.LittleEndian.Uint64(data), true, nil
}
