// Package discover finds the source files that belong to an app target.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Options controls which files Sources returns.
type Options struct {
	// Extension of compiled sources, including the dot. Defaults to .swift.
	Extension string
	// Exclude lists base names that are never part of the target, such as
	// a package manifest living next to the app sources.
	Exclude []string
}

var skipDirs = map[string]struct{}{
	"build":        {},
	"DerivedData":  {},
	"Pods":         {},
	"Carthage":     {},
	"node_modules": {},
	"fastlane":     {},
}

// bundleExts are directory bundles Xcode treats as single files.
var bundleExts = map[string]struct{}{
	".xcodeproj":    {},
	".xcworkspace":  {},
	".xcassets":     {},
	".xcdatamodeld": {},
	".xcframework":  {},
	".framework":    {},
	".bundle":       {},
	".playground":   {},
	".swiftpm":      {},
	".docc":         {},
	".lproj":        {},
}

// Sources returns the project-relative, slash-separated paths of every
// source file under root, sorted lexicographically. Hidden entries, build
// output, Xcode bundles, excluded names and anything ignored by the root
// .gitignore are skipped. Any unreadable directory is an error.
func Sources(root string, opts Options) ([]string, error) {
	ext := opts.Extension
	if ext == "" {
		ext = ".swift"
	}
	exclude := make(map[string]struct{}, len(opts.Exclude))
	for _, name := range opts.Exclude {
		exclude[name] = struct{}{}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", root)
	}

	gi := loadGitignore(root)

	var results []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			if _, bundle := bundleExts[filepath.Ext(name)]; bundle {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if filepath.Ext(name) != ext {
			return nil
		}
		if _, skip := exclude[name]; skip {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		results = append(results, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(results)
	return results, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
