package builtin

import (
	"sort"
	"strings"

	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// InitfsScheme is the "initfs:" scheme: a read-only in-memory file
// tree serving the boot-time content kinit execs (spec.md §4.8's
// "initfs:/bin/init"). The actual initfs archive format and its
// contents are out of scope (spec.md §1); this scheme only needs a
// narrow path -> bytes map, grounded on the teacher's
// linux/rootfs.go mount/path-resolution idiom reduced to "resolve a
// path, serve its bytes".
type InitfsScheme struct {
	scheme.Base
	files map[string][]byte
}

// NewInitfsScheme returns the initfs: scheme serving files, keyed by
// absolute path (e.g. "/bin/init").
func NewInitfsScheme(files map[string][]byte) *InitfsScheme {
	clone := make(map[string][]byte, len(files))
	for k, v := range files {
		clone[k] = v
	}
	return &InitfsScheme{Base: scheme.Base{SchemeName: "initfs"}, files: clone}
}

// dirListing returns the sorted, newline-joined set of direct children
// of dir among s.files' keys. dir is always "/"-rooted.
func (s *InitfsScheme) dirListing(dir string) (string, bool) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	seen := map[string]bool{}
	found := dir == "/"
	for path := range s.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		found = true
		rest := strings.TrimPrefix(path, prefix)
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		seen[rest] = true
	}
	if !found {
		return "", false
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), true
}

// Open resolves reference against the file map; a path with children
// in the map is treated as a directory listing.
func (s *InitfsScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	ref := url.Reference()
	if ref == "" {
		ref = "/"
	}
	if data, ok := s.files[ref]; ok {
		return resource.NewVec("initfs:"+ref, data), nil
	}
	if listing, ok := s.dirListing(ref); ok {
		return resource.NewVec("initfs:"+ref, []byte(listing)), nil
	}
	return nil, errno.New(errno.ENOENT, "open")
}

// Stat reports whether reference names a file or a directory.
func (s *InitfsScheme) Stat(url kurl.URL, out *stat.Stat) error {
	ref := url.Reference()
	if ref == "" {
		ref = "/"
	}
	if data, ok := s.files[ref]; ok {
		out.Mode = stat.ModeFile
		out.Size = uint64(len(data))
		return nil
	}
	if _, ok := s.dirListing(ref); ok {
		out.Mode = stat.ModeDir
		return nil
	}
	return errno.New(errno.ENOENT, "stat")
}
