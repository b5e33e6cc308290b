package cmd

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/ux"
)

// loadTree reads the tree named by --in, or the one discovered in the
// working directory when the flag is empty.
func loadTree(in string) (string, *analysis.Document, error) {
	path := in
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to determine working directory", err)
		}
		path, err = ux.DiscoverTree(wd)
		if stderrors.Is(err, ux.ErrNoTree) {
			return "", nil, errors.New(errors.ErrCodeTreeNotFound, "no tree file given and none found").
				WithSuggestions(
					"Pass the tree with --in FILE",
					"Or name it tree.json or tree.yaml in the current directory or .treecheck/",
				)
		}
		if err != nil {
			return "", nil, err
		}
	}

	doc, err := analysis.LoadDocument(path)
	if err != nil {
		return path, nil, err
	}
	return path, doc, nil
}

func newFormatter(cc *CommandContext, w io.Writer) (ux.Formatter, error) {
	return ux.NewFormatter(cc.Format, &ux.FormatterOptions{Writer: w, NoColor: cc.NoColor})
}
