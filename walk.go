package staticcompress

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

// Collect lists the regular files below root as pass candidates, sorted by
// name. Names are slash separated and relative to the filer. Hidden files
// and directories (leading dot) are ignored, which also keeps in-flight
// temporary artifacts out of the list.
func Collect(filer Filer, root string) ([]Source, error) {
	var sources []Source
	if err := collectDir(filer, path.Clean(root), &sources); err != nil {
		return nil, err
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}

func collectDir(filer Filer, dir string, sources *[]Source) error {
	f, err := filer.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("staticcompress: open %s: %w", dir, err)
	}
	infos, err := f.Readdir(-1)
	f.Close()
	if err != nil {
		return fmt.Errorf("staticcompress: read dir %s: %w", dir, err)
	}

	for _, info := range infos {
		if strings.HasPrefix(info.Name(), ".") {
			continue
		}
		name := path.Join(dir, info.Name())
		switch {
		case info.IsDir():
			if err := collectDir(filer, name, sources); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			*sources = append(*sources, Source{Name: name})
		}
	}
	return nil
}
