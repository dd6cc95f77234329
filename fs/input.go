package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fwojciec/docmodel"
)

// ReadInputs reads local files into extraction inputs. Each input's source
// is its path. When baseURL is set the metadata URL is the path resolved
// against it; otherwise it is a file:// URL of the absolute path.
func ReadInputs(ctx context.Context, paths []string, baseURL string) ([]*docmodel.Input, error) {
	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil || !u.IsAbs() {
			return nil, docmodel.Errorf(docmodel.EINVALID, "base URL must be absolute: %q", baseURL)
		}
		base = u
	}

	inputs := make([]*docmodel.Input, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, docmodel.Errorf(docmodel.ENOTFOUND, "input file not found: %s", p)
			}
			return nil, err
		}

		pageURL, err := inputURL(base, p)
		if err != nil {
			return nil, err
		}
		meta, err := docmodel.NewMetadata(pageURL, p)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, &docmodel.Input{Text: string(data), Metadata: meta})
	}
	return inputs, nil
}

func inputURL(base *url.URL, p string) (string, error) {
	if base != nil {
		rel := &url.URL{Path: SourceToPath(p) + filepath.Ext(p)}
		return base.ResolveReference(rel).String(), nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
