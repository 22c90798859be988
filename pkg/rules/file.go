package rules

import (
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// FileDescriptor is the normalized view file rules work on.
// Extension is lower-case and carries no leading dot.
type FileDescriptor struct {
	File      any    `json:"-"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Type      string `json:"type"`
	Extension string `json:"extension"`
}

var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "tiff", "tif", "heic", "heif", "avif"}

// DescribeHeader builds a descriptor from an uploaded multipart file. The MIME
// type comes from the part header, falling back to the file extension.
func DescribeHeader(fh *multipart.FileHeader) FileDescriptor {
	ext := extensionOf(fh.Filename)
	typ := fh.Header.Get("Content-Type")
	if typ == "" || typ == "application/octet-stream" {
		if byExt := mime.TypeByExtension("." + ext); byExt != "" {
			typ = byExt
		}
	}
	if mt, _, err := mime.ParseMediaType(typ); err == nil {
		typ = mt
	}
	return FileDescriptor{File: fh, Name: fh.Filename, Size: fh.Size, Type: typ, Extension: ext}
}

// Files normalizes a value into a descriptor list. It accepts descriptors,
// multipart headers, maps with name/size/type keys, and slices of any of those.
// ok is false when some element is not a file.
func Files(v any) ([]FileDescriptor, bool) {
	switch f := v.(type) {
	case nil:
		return nil, false
	case FileDescriptor:
		return []FileDescriptor{f}, true
	case *FileDescriptor:
		if f == nil {
			return nil, false
		}
		return []FileDescriptor{*f}, true
	case []FileDescriptor:
		return f, true
	case *multipart.FileHeader:
		if f == nil {
			return nil, false
		}
		return []FileDescriptor{DescribeHeader(f)}, true
	case []*multipart.FileHeader:
		out := make([]FileDescriptor, 0, len(f))
		for _, fh := range f {
			if fh == nil {
				return nil, false
			}
			out = append(out, DescribeHeader(fh))
		}
		return out, true
	}

	if m := predicate.ToMap(v); m != nil {
		d, ok := describeMap(m)
		if !ok {
			return nil, false
		}
		return []FileDescriptor{d}, true
	}
	if items := predicate.ToSlice(v); items != nil {
		out := make([]FileDescriptor, 0, len(items))
		for _, item := range items {
			files, ok := Files(item)
			if !ok {
				return nil, false
			}
			out = append(out, files...)
		}
		return out, true
	}
	return nil, false
}

func describeMap(m map[string]any) (FileDescriptor, bool) {
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return FileDescriptor{}, false
	}
	size, ok := predicate.ToInt(m["size"])
	if !ok || size < 0 {
		return FileDescriptor{}, false
	}
	typ := predicate.ToString(m["type"])
	ext := predicate.ToString(m["extension"])
	if ext == "" {
		ext = extensionOf(name)
	}
	return FileDescriptor{
		File:      m["file"],
		Name:      name,
		Size:      size,
		Type:      typ,
		Extension: strings.ToLower(strings.TrimPrefix(ext, ".")),
	}, true
}

func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// File is the family of upload rules. Size rules compare the total size of
// all files against the threshold.
func File() *Family {
	size := params.ParamFileSize
	list := []params.ArgType{params.ArgString}
	count := []params.ArgType{params.ArgInteger}
	return NewFamily("file", "file").MustRegister(
		&Func{
			Name:    "file",
			Aliases: []string{"file"},
			Steps: []Step{CheckValue(func(v any) bool {
				files, ok := Files(v)
				return ok && len(files) > 0
			}, "@{name} must be a file")},
		},
		&Func{
			Name:      "minSize",
			ParamType: size,
			Steps: []Step{Check(func(in Input) bool {
				total, ok := totalSize(in.Value)
				return ok && total >= thresholdBytes(in.Param)
			}, "@{name} must be at least @{param.raw}")},
		},
		&Func{
			Name:      "maxSize",
			ParamType: size,
			Steps: []Step{Check(func(in Input) bool {
				total, ok := totalSize(in.Value)
				return ok && total <= thresholdBytes(in.Param)
			}, "@{name} must not exceed @{param.raw}")},
		},
		&Func{
			Name:      "mimes",
			Aliases:   []string{"mimes"},
			ParamType: params.ParamList,
			ArgTypes:  list,
			Steps: []Step{Check(func(in Input) bool {
				allowed := listStrings(in.Param)
				return everyFile(in.Value, func(f FileDescriptor) bool {
					return slices.ContainsFunc(allowed, func(pattern string) bool {
						return mimeMatches(pattern, f.Type)
					})
				})
			}, "@{name} must be a file of type @{param}")},
		},
		&Func{
			Name:      "extensions",
			Aliases:   []string{"extensions"},
			ParamType: params.ParamList,
			ArgTypes:  list,
			Steps: []Step{Check(func(in Input) bool {
				allowed := listStrings(in.Param)
				for i, ext := range allowed {
					allowed[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
				}
				return everyFile(in.Value, func(f FileDescriptor) bool {
					return slices.Contains(allowed, f.Extension)
				})
			}, "@{name} must have one of the extensions @{param}")},
		},
		&Func{
			Name:    "image",
			Aliases: []string{"image"},
			Steps: []Step{CheckValue(func(v any) bool {
				return everyFile(v, func(f FileDescriptor) bool {
					if f.Type != "" {
						return strings.HasPrefix(f.Type, "image/")
					}
					return slices.Contains(imageExtensions, f.Extension)
				})
			}, "@{name} must be an image")},
		},
		&Func{
			Name:      "minFiles",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				files, ok := Files(in.Value)
				return ok && numeric(len(files), in.Param, gte)
			}, "@{name} must contain at least @{param} files")},
		},
		&Func{
			Name:      "maxFiles",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				files, ok := Files(in.Value)
				return ok && numeric(len(files), in.Param, lte)
			}, "@{name} must not contain more than @{param} files")},
		},
	)
}

func totalSize(v any) (int64, bool) {
	files, ok := Files(v)
	if !ok {
		return 0, false
	}
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total, true
}

func thresholdBytes(p any) int64 {
	switch fs := p.(type) {
	case params.FileSize:
		return fs.Bytes
	case *params.FileSize:
		if fs != nil {
			return fs.Bytes
		}
	}
	n, _ := predicate.ToInt(p)
	return n
}

func everyFile(v any, fn func(FileDescriptor) bool) bool {
	files, ok := Files(v)
	if !ok || len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !fn(f) {
			return false
		}
	}
	return true
}

// mimeMatches supports exact types and "image/*" style wildcards.
func mimeMatches(pattern, typ string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	typ = strings.ToLower(typ)
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(typ, prefix+"/")
	}
	return pattern == typ
}
