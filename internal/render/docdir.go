package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwhitt/corpora-audit/internal/types"
)

// BuildDocDir destroys docDir if it exists and rebuilds it with one
// subdirectory per corpus containing a copy of that corpus's README, or a
// placeholder when the README is missing. The status table links into this
// tree.
func BuildDocDir(report *types.AggregateReport, docDir string) error {
	if err := os.RemoveAll(docDir); err != nil {
		return fmt.Errorf("failed to clear doc dir %s: %w", docDir, err)
	}
	if err := os.MkdirAll(docDir, 0o755); err != nil {
		return fmt.Errorf("failed to create doc dir %s: %w", docDir, err)
	}

	for i := range report.Corpora {
		c := &report.Corpora[i]
		corpusDir := filepath.Join(docDir, c.Name)
		if err := os.MkdirAll(corpusDir, 0o755); err != nil {
			return fmt.Errorf("failed to create doc dir for corpus %s: %w", c.Name, err)
		}

		dest := filepath.Join(corpusDir, "README.md")
		content, err := readmeContent(c)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, content, 0o644); err != nil {
			return fmt.Errorf("failed to write doc readme for corpus %s: %w", c.Name, err)
		}
	}

	return nil
}

func readmeContent(c *types.CorpusStatus) ([]byte, error) {
	if c.ReadmeExists {
		data, err := os.ReadFile(filepath.Join(c.Path, "README.md"))
		if err != nil {
			return nil, fmt.Errorf("failed to copy readme for corpus %s: %w", c.Name, err)
		}
		return data, nil
	}
	return []byte(fmt.Sprintf("# %s\n\n(readme is missing! add one soon!)\n", c.Name)), nil
}
